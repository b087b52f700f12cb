// Package design describes the public HTTP contract in the goa DSL. The
// handlers in internal/httpapi are mounted by hand on a goa muxer; this
// design is the source of the OpenAPI document (goa gen enquirycrm/api/design).
package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("enquirycrm", func() {
	Title("Enquiry CRM API")
	Description("Enquiry lifecycle, assignment and follow-up API for real-estate leads")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8080")
		})
	})
})

// JWTAuth guards every route except login, health and public enquiry capture.
var JWTAuth = JWTSecurity("jwt", func() {
	Description("Bearer token issued by /api/v1/auth/login")
	Scope("admin", "SUPER_ADMIN or CRM_ADMIN")
})

var EnquiryStatus = Type("EnquiryStatus", String, func() {
	Enum("NEW", "IN_PROGRESS", "INTERESTED", "FOLLOW_UP", "FOLLOW_UP_SCHEDULED",
		"SITE_VISIT_SCHEDULED", "SITE_VISIT_COMPLETED", "INVENTORY_SALE", "INVENTORY_HOLD",
		"TAKEN_RECEIVED", "TOKEN", "BOOKED", "NOT_INTERESTED", "UNQUALIFIED",
		"CLOSED_WON", "CLOSED_LOST")
})

var InterestLevel = Type("InterestLevel", String, func() {
	Enum("HOT", "WARM", "COLD")
})

var PropertyType = Type("PropertyType", String, func() {
	Enum("ONE_RK", "ONE_BHK", "ONE_HALF_BHK", "TWO_BHK", "TWO_HALF_BHK", "THREE_BHK",
		"THREE_HALF_BHK", "FOUR_BHK", "FOUR_BHK_PLUS", "VILLA", "PENTHOUSE", "DUPLEX",
		"STUDIO", "COMMERCIAL", "PLOT")
})

var BudgetRange = Type("BudgetRange", String, func() {
	Enum("UNDER_5L", "FIVE_TO_10L", "TEN_TO_20L", "TWENTY_TO_30L", "THIRTY_TO_50L",
		"FIFTY_TO_75L", "SEVENTY_FIVE_L_TO_1CR", "ONE_TO_1_5CR", "ONE_5_TO_2CR",
		"TWO_TO_3CR", "THREE_TO_5CR", "ABOVE_5CR")
})

var LeadSource = Type("LeadSource", String, func() {
	Enum("WEBSITE", "DIGITAL", "REFERRAL", "WALKIN", "CC", "CP", "OTHER")
})

var ActivityType = Type("ActivityType", String, func() {
	Enum("CALL", "EMAIL", "MEETING", "SITE_VISIT", "FOLLOW_UP", "NOTE", "OTHER")
})

var UserRole = Type("UserRole", String, func() {
	Enum("SUPER_ADMIN", "CRM_ADMIN", "SALES")
})

// Health check
var _ = Service("health", func() {
	Description("Liveness and database reachability")
	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})
})

var HealthResult = ResultType("application/vnd.health", func() {
	Attribute("status", String, "healthy or degraded", func() {
		Example("healthy")
	})
	Attribute("service", String, "Service name")
	Attribute("version", String, "Service version")
	Attribute("database", String, "up or down")
	Required("status", "service", "version", "database")
})

// Authentication service
var _ = Service("auth", func() {
	Description("Login and user management")
	Error("unauthorized")
	Error("bad_request")

	Method("login", func() {
		Payload(func() {
			Attribute("username", String, func() {
				MinLength(1)
				Example("admin")
			})
			Attribute("password", String, func() {
				MinLength(1)
			})
			Required("username", "password")
		})
		Result(LoginResult)
		HTTP(func() {
			POST("/api/v1/auth/login")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("me", func() {
		Security(JWTAuth)
		Payload(func() {
			Token("token", String)
		})
		Result(UserResult)
		HTTP(func() {
			GET("/api/v1/auth/me")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("create_user", func() {
		Description("Create a user (admin only). The role defaults to SALES.")
		Security(JWTAuth, func() {
			Scope("admin")
		})
		Error("forbidden")
		Error("conflict")
		Payload(func() {
			Token("token", String)
			Attribute("username", String, func() {
				MaxLength(50)
			})
			Attribute("password", String, func() {
				MinLength(8)
			})
			Attribute("name", String)
			Attribute("email", String, func() {
				Format(FormatEmail)
			})
			Attribute("phone", String)
			Attribute("role", UserRole)
			Required("username", "password")
		})
		Result(UserResult)
		HTTP(func() {
			POST("/api/v1/auth/users")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("unauthorized", StatusUnauthorized)
			Response("forbidden", StatusForbidden)
			Response("conflict", StatusConflict)
		})
	})
})

var LoginResult = ResultType("application/vnd.login", func() {
	Attribute("accessToken", String, "Signed HS256 token")
	Attribute("tokenType", String, func() {
		Example("bearer")
	})
	Attribute("user", UserResult)
	Required("accessToken", "tokenType")
})

var UserResult = ResultType("application/vnd.user", func() {
	Attribute("id", UInt)
	Attribute("username", String)
	Attribute("name", String)
	Attribute("email", String)
	Attribute("phone", String)
	Attribute("role", UserRole)
	Attribute("isActive", Boolean)
	Attribute("createdAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("updatedAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("lastLogin", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "username", "role", "isActive")
})

var SalesPersonResult = ResultType("application/vnd.sales-person", func() {
	Attribute("id", UInt)
	Attribute("name", String)
	Attribute("email", String)
	Attribute("phone", String)
	Attribute("mobile", String, "Alias of phone")
	Attribute("available", Boolean)
	Attribute("isAvailable", Boolean, "Alias of available")
	Attribute("userId", UInt)
	Attribute("createdAt", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "name", "available")
})

var EnquiryResult = ResultType("application/vnd.enquiry", func() {
	Attribute("id", UInt)
	Attribute("customerName", String)
	Attribute("customerEmail", String)
	Attribute("customerPhone", String)
	Attribute("customerMobile", String, "Alias of customerPhone")
	Attribute("status", EnquiryStatus)
	Attribute("interestLevel", InterestLevel)
	Attribute("propertyType", PropertyType)
	Attribute("budgetRange", BudgetRange)
	Attribute("source", LeadSource)
	Attribute("priority", Int)
	Attribute("salesPersonId", UInt, "Weak reference: may name a deleted sales person")
	Attribute("assignedTo", SalesPersonResult, "Present while the sales person still exists")
	Attribute("remarks", String)
	Attribute("createdAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("updatedAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("nextFollowUpAt", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "customerName", "status", "source", "priority", "createdAt", "updatedAt")
})

var EnquiryPage = ResultType("application/vnd.enquiry-page", func() {
	Attribute("content", CollectionOf(EnquiryResult))
	Attribute("number", Int, "Zero-based page number")
	Attribute("size", Int)
	Attribute("totalElements", Int64)
	Attribute("totalPages", Int)
	Required("content", "number", "size", "totalElements", "totalPages")
})

var EnquiryFields = Type("EnquiryFields", func() {
	Attribute("customerName", String, func() {
		MaxLength(120)
	})
	Attribute("customerEmail", String, func() {
		MaxLength(150)
	})
	Attribute("customerPhone", String, func() {
		MaxLength(20)
	})
	Attribute("customerMobile", String, "Accepted in place of customerPhone", func() {
		MaxLength(20)
	})
	Attribute("interestLevel", InterestLevel)
	Attribute("propertyType", PropertyType)
	Attribute("budgetRange", BudgetRange)
	Attribute("source", LeadSource)
	Attribute("priority", Int, func() {
		Minimum(1)
	})
	Attribute("remarks", String, func() {
		MaxLength(2000)
	})
	Attribute("nextFollowUpAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("salesPersonId", UInt)
})

// pageParams adds the paging and sorting query parameters to a method.
func pageParams(defaultSize int) {
	Attribute("page", Int, func() {
		Default(0)
		Minimum(0)
	})
	Attribute("size", Int, func() {
		Default(defaultSize)
		Minimum(1)
	})
	Attribute("sortBy", String, func() {
		Enum("id", "createdAt", "updatedAt", "customerName", "status", "interestLevel",
			"priority", "nextFollowUpAt", "source")
	})
	Attribute("sortDir", String, func() {
		Enum("asc", "desc")
	})
}

func pageQuery() {
	Param("page")
	Param("size")
	Param("sortBy")
	Param("sortDir")
}

var _ = Service("enquiries", func() {
	Description("Enquiry capture, lifecycle, assignment and queries")
	Security(JWTAuth)
	Error("not_found")
	Error("bad_request")
	Error("unauthorized")

	Method("create", func() {
		Description("Capture a new enquiry. Status always starts at NEW.")
		NoSecurity()
		Payload(func() {
			Extend(EnquiryFields)
			Required("customerName")
		})
		Result(EnquiryResult)
		HTTP(func() {
			POST("/api/v1/enquiries")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("not_found", StatusNotFound)
		})
	})

	Method("list", func() {
		Payload(func() {
			Token("token", String)
			pageParams(100)
		})
		Result(EnquiryPage)
		HTTP(func() {
			GET("/api/v1/enquiries")
			pageQuery()
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("search", func() {
		Description("Case-insensitive substring match on name, email, phone and remarks")
		Payload(func() {
			Token("token", String)
			Attribute("searchTerm", String)
			pageParams(10)
		})
		Result(EnquiryPage)
		HTTP(func() {
			GET("/api/v1/enquiries/search")
			Param("searchTerm")
			pageQuery()
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("filtered", func() {
		Description("Conjunctive filter; every supplied criterion must hold")
		Payload(func() {
			Token("token", String)
			Attribute("status", EnquiryStatus)
			Attribute("interestLevel", InterestLevel)
			Attribute("salesPersonId", UInt)
			Attribute("activeOnly", Boolean, func() {
				Default(false)
			})
			Attribute("from", String, "Inclusive lower bound on createdAt")
			Attribute("to", String, "Inclusive upper bound on createdAt")
			pageParams(10)
		})
		Result(EnquiryPage)
		HTTP(func() {
			GET("/api/v1/enquiries/filtered")
			Param("status")
			Param("interestLevel")
			Param("salesPersonId")
			Param("activeOnly")
			Param("from")
			Param("to")
			pageQuery()
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("show", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Required("id")
		})
		Result(EnquiryResult)
		HTTP(func() {
			GET("/api/v1/enquiries/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("update", func() {
		Description("Merge update: absent fields are left untouched")
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Extend(EnquiryFields)
			Attribute("status", EnquiryStatus)
			Required("id")
		})
		Result(EnquiryResult)
		HTTP(func() {
			PUT("/api/v1/enquiries/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("delete", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Required("id")
		})
		HTTP(func() {
			DELETE("/api/v1/enquiries/{id}")
			Response(StatusNoContent)
			Response("not_found", StatusNotFound)
		})
	})

	Method("assign", func() {
		Description("Assign to a sales person id, or to the sales person whose email matches that user id")
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("targetId", UInt)
			Required("id", "targetId")
		})
		Result(EnquiryResult)
		HTTP(func() {
			POST("/api/v1/enquiries/{id}/assign/{targetId}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("auto_assign", func() {
		Description("Assign to the available sales person with the fewest enquiries")
		Error("state_error")
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Required("id")
		})
		Result(EnquiryResult)
		HTTP(func() {
			POST("/api/v1/enquiries/{id}/auto-assign")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("state_error", StatusConflict)
		})
	})

	Method("update_status", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("status", EnquiryStatus)
			Required("id", "status")
		})
		Result(EnquiryResult)
		HTTP(func() {
			PUT("/api/v1/enquiries/{id}/status")
			Param("status")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("update_interest_level", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("interestLevel", InterestLevel)
			Required("id", "interestLevel")
		})
		Result(EnquiryResult)
		HTTP(func() {
			PUT("/api/v1/enquiries/{id}/interest-level")
			Param("interestLevel")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("add_remarks", func() {
		Description("Replace the remarks with the plain-text request body")
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("remarks", String)
			Required("id")
		})
		Result(EnquiryResult)
		HTTP(func() {
			POST("/api/v1/enquiries/{id}/remarks")
			Body("remarks")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("schedule_follow_up", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("followUpDate", String, "RFC 3339, or a local date-time in the follow-up zone")
			Required("id", "followUpDate")
		})
		Result(EnquiryResult)
		HTTP(func() {
			POST("/api/v1/enquiries/{id}/schedule-follow-up")
			Param("followUpDate")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("count_total", func() {
		Payload(func() {
			Token("token", String)
		})
		Result(Int64)
		HTTP(func() {
			GET("/api/v1/enquiries/count/total")
			Response(StatusOK)
		})
	})
})

var _ = Service("sales_persons", func() {
	Description("Sales representatives and their availability")
	Security(JWTAuth)
	Error("not_found")
	Error("bad_request")
	Error("unauthorized")

	Method("create", func() {
		Payload(func() {
			Token("token", String)
			Attribute("name", String, func() {
				MaxLength(100)
			})
			Attribute("email", String, func() {
				Format(FormatEmail)
			})
			Attribute("phone", String)
			Attribute("mobile", String)
			Attribute("available", Boolean)
			Attribute("isAvailable", Boolean)
			Attribute("userId", UInt)
			Required("name")
		})
		Result(SalesPersonResult)
		HTTP(func() {
			POST("/api/v1/sales-persons")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("available", func() {
		Payload(func() {
			Token("token", String)
		})
		Result(CollectionOf(SalesPersonResult))
		HTTP(func() {
			GET("/api/v1/sales-persons/available")
			Response(StatusOK)
		})
	})

	Method("least_enquiries", func() {
		Description("Sales person with the fewest assigned enquiries, available or not")
		Payload(func() {
			Token("token", String)
		})
		Result(SalesPersonResult)
		HTTP(func() {
			GET("/api/v1/sales-persons/least-enquiries")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("set_availability", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt)
			Attribute("available", Boolean)
			Required("id", "available")
		})
		Result(SalesPersonResult)
		HTTP(func() {
			PUT("/api/v1/sales-persons/{id}/availability")
			Param("available")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})
})

var CommentResult = ResultType("application/vnd.comment", func() {
	Attribute("id", UInt)
	Attribute("enquiryId", UInt)
	Attribute("userId", UInt)
	Attribute("commentText", String)
	Attribute("commentNumber", Int, "1-based, increasing within one enquiry")
	Attribute("createdAt", String, func() {
		Format(FormatDateTime)
	})
	Attribute("updatedAt", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "enquiryId", "commentText", "commentNumber")
})

var _ = Service("comments", func() {
	Security(JWTAuth)
	Error("not_found")
	Error("bad_request")
	Error("unauthorized")

	Method("list", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt, "Enquiry id")
			Required("id")
		})
		Result(CollectionOf(CommentResult))
		HTTP(func() {
			GET("/api/v1/enquiries/{id}/comments")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
		})
	})

	Method("add", func() {
		Payload(func() {
			Token("token", String)
			Attribute("id", UInt, "Enquiry id")
			Attribute("commentText", String, func() {
				MinLength(1)
				MaxLength(1000)
			})
			Attribute("userId", UInt, "Defaults to the caller")
			Required("id", "commentText")
		})
		Result(CommentResult)
		HTTP(func() {
			POST("/api/v1/enquiries/{id}/comments")
			Response(StatusCreated)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("delete", func() {
		Payload(func() {
			Token("token", String)
			Attribute("commentId", UInt)
			Required("commentId")
		})
		HTTP(func() {
			DELETE("/api/v1/enquiries/comments/{commentId}")
			Response(StatusNoContent)
			Response("not_found", StatusNotFound)
		})
	})
})

var ActivityResult = ResultType("application/vnd.sales-activity", func() {
	Attribute("id", UInt)
	Attribute("enquiryId", UInt)
	Attribute("salesPersonId", UInt)
	Attribute("activityType", ActivityType)
	Attribute("notes", String)
	Attribute("activityDate", String, func() {
		Format(FormatDateTime)
	})
	Required("id", "activityType", "activityDate")
})

var _ = Service("sales_activities", func() {
	Security(JWTAuth)
	Error("not_found")
	Error("bad_request")
	Error("unauthorized")

	Method("log", func() {
		Payload(func() {
			Token("token", String)
			Attribute("enquiryId", UInt)
			Attribute("salesPersonId", UInt)
			Attribute("activityType", ActivityType)
			Attribute("notes", String, func() {
				MaxLength(1000)
			})
			Attribute("activityDate", String, "Defaults to now", func() {
				Format(FormatDateTime)
			})
			Required("activityType")
		})
		Result(ActivityResult)
		HTTP(func() {
			POST("/api/v1/sales-activities/log")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("recent", func() {
		Payload(func() {
			Token("token", String)
			Attribute("limit", Int, func() {
				Default(10)
				Minimum(1)
				Maximum(500)
			})
		})
		Result(CollectionOf(ActivityResult))
		HTTP(func() {
			GET("/api/v1/sales-activities/recent")
			Param("limit")
			Response(StatusOK)
		})
	})
})

var _ = Service("notifications", func() {
	Description("Follow-up due lists, computed in the follow-up time zone")
	Security(JWTAuth)
	Error("bad_request")
	Error("unauthorized")

	Method("due_today", func() {
		Payload(func() {
			Token("token", String)
			Attribute("salesPersonId", UInt)
			Required("salesPersonId")
		})
		Result(CollectionOf(EnquiryResult))
		HTTP(func() {
			GET("/api/v1/notifications/follow-up/{salesPersonId}")
			Response(StatusOK)
		})
	})

	Method("upcoming", func() {
		Description("Follow-ups from today through the next 7 days")
		Payload(func() {
			Token("token", String)
			Attribute("salesPersonId", UInt)
			Required("salesPersonId")
		})
		Result(CollectionOf(EnquiryResult))
		HTTP(func() {
			GET("/api/v1/notifications/upcoming/{salesPersonId}")
			Response(StatusOK)
		})
	})

	Method("due", func() {
		Payload(func() {
			Token("token", String)
			Attribute("salesPersonId", UInt)
			Attribute("days", Int, func() {
				Default(0)
				Minimum(0)
			})
		})
		Result(CollectionOf(EnquiryResult))
		HTTP(func() {
			GET("/api/v1/notifications/due")
			Param("salesPersonId")
			Param("days")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
		})
	})
})
