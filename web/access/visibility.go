package access

import (
	"miniblog/database/model"

	"gorm.io/gorm"
)

// Comments have exactly two states: visible (initial) and hidden. Hiding is
// the panel's soft delete; the record and its content survive, only ordinary
// reads stop returning it. There is no unhide transition anywhere.

// VisibleTo reports whether the comment is readable by a caller with the
// given role. Hidden comments stay readable for the elevated set.
func VisibleTo(r Role, comment *model.Comment) bool {
	return comment.IsVisible || IsElevated(r)
}

// VisibilityScope returns a query scope applying the same policy at read
// time: non-elevated callers only see visible comments.
func VisibilityScope(r Role) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if IsElevated(r) {
			return tx
		}
		return tx.Where("is_visible = ?", true)
	}
}
