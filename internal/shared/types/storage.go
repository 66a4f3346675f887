package types

import "strings"

// IsS3URI reports whether location points at S3 (s3://bucket/key).
func IsS3URI(location string) bool {
	return strings.HasPrefix(strings.ToLower(location), "s3://")
}
