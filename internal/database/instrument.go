package database

import (
	"errors"
	"time"

	"enquirycrm/internal/metrics"

	"gorm.io/gorm"
)

const startedAtKey = "metrics:started_at"

// instrument times every gorm operation into the db_queries metrics.
func instrument(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		op := h.op
		if err := h.before("metrics:before_"+op, startTimer); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+op, func(tx *gorm.DB) { observe(tx, op) }); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(tx *gorm.DB) {
	tx.InstanceSet(startedAtKey, time.Now())
}

func observe(tx *gorm.DB, op string) {
	v, ok := tx.InstanceGet(startedAtKey)
	if !ok {
		return
	}
	started, ok := v.(time.Time)
	if !ok {
		return
	}
	err := tx.Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	metrics.RecordDBQuery(op, time.Since(started), err)
}
