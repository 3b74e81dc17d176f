package specification

import "gorm.io/gorm"

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByMethod struct {
	Method string
}

func (s ByMethod) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("method = ?", s.Method)
}
