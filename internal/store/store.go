// Package store holds the gorm-backed repositories. Every method takes a
// context and translates driver errors into application errors.
package store

import (
	"errors"
	"strings"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is accepted by postgres, mysql and sqlite alike.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

// translate maps gorm and driver errors onto the application taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s not found", entity)
	}
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.ErrCodeConflict, entity+" already exists", err)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternalError, "database error", err)
}

// isUniqueViolation covers translated gorm errors plus drivers gorm does not
// translate (modernc sqlite).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

func orderBy(q *gorm.DB, sort domain.Sort) *gorm.DB {
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Column}, Desc: sort.Desc})
	if sort.Column != "id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: sort.Desc})
	}
	return q
}

func paginate(q *gorm.DB, p domain.PageRequest) *gorm.DB {
	return q.Offset(p.Offset()).Limit(p.Size)
}
