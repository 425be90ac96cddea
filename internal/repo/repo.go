// Package repo contains one GORM repository per entity. Every method that can
// participate in a unit of work takes the active transaction handle as an
// explicit argument; nil falls back to the base *gorm.DB.
package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 各仓库统一的未命中哨兵，handler 层据此映射 404
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
