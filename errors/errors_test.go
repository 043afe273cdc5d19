package errors

import (
	"testing"

	"github.com/fournarakis/jabcode/metadata"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status metadata.Status
		want   error
	}{
		{metadata.StatusSuccess, nil},
		{metadata.StatusVersionMismatch, ErrVersionMismatch},
		{metadata.StatusDecodeFailure, ErrMetadataDecodeFailed},
		{metadata.StatusFatal, ErrFatal},
		{metadata.Status(99), ErrFatal},
	}
	for _, c := range cases {
		if got := FromStatus(c.status); got != c.want {
			t.Errorf("FromStatus(%v) = %v, want %v", c.status, got, c.want)
		}
	}
}
