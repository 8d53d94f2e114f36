package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "たった今", FormatRelativeTime(now))
	assert.Equal(t, "たった今", FormatRelativeTime(now.Add(-30*time.Minute)))
	assert.Equal(t, "1時間前", FormatRelativeTime(now.Add(-90*time.Minute)))
	assert.Equal(t, "5時間前", FormatRelativeTime(now.Add(-5*time.Hour)))
	assert.Equal(t, "23時間前", FormatRelativeTime(now.Add(-23*time.Hour-30*time.Minute)))
	assert.Equal(t, "1日前", FormatRelativeTime(now.Add(-25*time.Hour)))
	assert.Equal(t, "3日前", FormatRelativeTime(now.Add(-3*24*time.Hour-time.Hour)))
}
