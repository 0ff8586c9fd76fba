package gather

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticer/pkg/descriptor"
)

// lineage pairs a descriptor with its (optional) parent. Fields are read
// from the descriptor first and from the parent when absent.
type lineage struct {
	id     string
	own    *descriptor.Record
	parent *descriptor.Record
	logger *log.Logger
}

func (l lineage) inherited(field string) {
	l.logger.Debug("inherited from parent", "id", l.id, "field", field)
}

// chooseString returns the descriptor's own value, or the parent's when the
// own one is blank. The result is whitespace-trimmed, so later normalization
// only ever sees trimmed text.
func chooseString(l lineage, field string, get func(*descriptor.Record) string) string {
	if v := strings.TrimSpace(get(l.own)); v != "" {
		return v
	}
	if l.parent == nil {
		return ""
	}
	v := strings.TrimSpace(get(l.parent))
	if v != "" {
		l.inherited(field)
	}
	return v
}

func chooseSlice[T any](l lineage, field string, get func(*descriptor.Record) []T) []T {
	if v := get(l.own); len(v) > 0 {
		return v
	}
	if l.parent == nil {
		return nil
	}
	v := get(l.parent)
	if len(v) > 0 {
		l.inherited(field)
	}
	return v
}

func choosePtr[T any](l lineage, field string, get func(*descriptor.Record) *T) *T {
	if v := get(l.own); v != nil {
		return v
	}
	if l.parent == nil {
		return nil
	}
	v := get(l.parent)
	if v != nil {
		l.inherited(field)
	}
	return v
}
