package kpi

import "errors"

var (
	ErrKpiNotFound = errors.New("kpi not found")
)
