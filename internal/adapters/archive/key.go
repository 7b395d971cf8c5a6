// Package archive holds helpers shared by the report archive backends.
package archive

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix is the key prefix of every archived report.
const Prefix = "reports/"

// NewKey builds a unique object key: reports/<date>/<uuid>-<name>.
func NewKey(now time.Time, name string) string {
	return fmt.Sprintf("%s%s/%s-%s", Prefix, now.UTC().Format("2006-01-02"), uuid.NewString(), path.Base(name))
}

// NameFromKey recovers the file name given to NewKey.
func NameFromKey(key string) string {
	base := path.Base(key)
	// uuid.NewString is 36 characters, followed by '-'.
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}
	return base
}

// ContentType guesses the media type of an archived file from its name.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}
