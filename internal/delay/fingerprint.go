// Package delay decides and records community delay reports.
package delay

import (
	"hash/fnv"
	"strconv"
	"strings"

	domainErrors "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
)

const (
	fingerprintPrefix    = "fp_"
	maxFingerprintLength = 64
)

// Fingerprint derives a stable device id from request traits such as
// user agent, languages and platform hints. Equal traits give equal ids.
func Fingerprint(traits ...string) string {
	h := fnv.New64a()
	for _, t := range traits {
		_, _ = h.Write([]byte(t))
		_, _ = h.Write([]byte{0})
	}
	return fingerprintPrefix + strconv.FormatUint(h.Sum64(), 36)
}

// NormalizeFingerprint validates a client-supplied fingerprint.
func NormalizeFingerprint(raw string) (string, error) {
	fp := strings.TrimSpace(raw)
	if fp == "" || len(fp) > maxFingerprintLength {
		return "", domainErrors.ErrInvalidFingerprint
	}
	for _, r := range fp {
		if r <= ' ' || r > '~' {
			return "", domainErrors.ErrInvalidFingerprint
		}
	}
	return fp, nil
}
