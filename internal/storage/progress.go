package storage

import (
	"fmt"
	"strings"
)

// EncodeProgress writes cleared flags as a string of '0' and '1', one
// character per level.
func EncodeProgress(flags []bool) string {
	var sb strings.Builder
	sb.Grow(len(flags))
	for _, f := range flags {
		if f {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DecodeProgress parses a string written by EncodeProgress into count flags.
// Shorter input leaves the remaining levels uncleared.
func DecodeProgress(s string, count int) ([]bool, error) {
	s = strings.TrimSpace(s)
	if len(s) > count {
		return nil, fmt.Errorf("storage: progress has %d levels, pack has %d", len(s), count)
	}

	flags := make([]bool, count)
	for i := range len(s) {
		switch s[i] {
		case '1':
			flags[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("storage: invalid progress character %q at %d", s[i], i)
		}
	}
	return flags, nil
}

// UserPack namespaces a pack id per user, so several players can share one
// database.
func UserPack(packID, user string) string {
	if user == "" {
		return packID
	}
	return packID + "@" + user
}
