// Package sample provides rows for previews and runs.
package sample

import (
	"github.com/verte-zerg/reportcraft/internal/model"
)

var builtin = []model.Record{
	{"user_name": "John Smith", "email": "john@example.com", "sales_amount": 15420, "order_count": 23, "registration_date": "2024-01-15", "region": "North America"},
	{"user_name": "Sarah Johnson", "email": "sarah@example.com", "sales_amount": 28340, "order_count": 41, "registration_date": "2023-12-08", "region": "Europe"},
	{"user_name": "Mike Chen", "email": "mike@example.com", "sales_amount": 19780, "order_count": 31, "registration_date": "2024-02-03", "region": "Asia Pacific"},
	{"user_name": "Emily Davis", "email": "emily@example.com", "sales_amount": 22150, "order_count": 37, "registration_date": "2023-11-22", "region": "North America"},
}

// Rows returns a copy of the built-in sample records.
func Rows() []model.Record {
	out := make([]model.Record, len(builtin))
	for i, rec := range builtin {
		out[i] = rec.Clone()
	}
	return out
}
