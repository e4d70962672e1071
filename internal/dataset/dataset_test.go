package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultHistoryIsValid(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	require.Equal(t, len(history), ds.Len())

	anchors := ds.Anchors()
	assert.Equal(t, day(2015, time.January, 1), anchors[0].Date)
	assert.Equal(t, day(2025, time.August, 31), anchors[len(anchors)-1].Date)
	assert.Equal(t, 4.40, anchors[len(anchors)-1].Rate)
}

func TestValidateRejectsDuplicateDates(t *testing.T) {
	anchors := []models.Anchor{
		{Date: day(2020, 1, 1), Rate: 1},
		{Date: day(2020, 1, 1), Rate: 2},
	}
	err := Validate(anchors)
	require.ErrorIs(t, err, ErrUnorderedAnchors)

	_, err = New(anchors)
	require.ErrorIs(t, err, ErrUnorderedAnchors)
}

func TestValidateRejectsDescendingDates(t *testing.T) {
	anchors := []models.Anchor{
		{Date: day(2020, 2, 1)},
		{Date: day(2020, 1, 1)},
	}
	require.ErrorIs(t, Validate(anchors), ErrUnorderedAnchors)
}

func TestValidateRejectsTimeComponent(t *testing.T) {
	anchors := []models.Anchor{{Date: time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)}}
	require.ErrorIs(t, Validate(anchors), ErrInvalidAnchor)
}

func TestValidateAcceptsShortTables(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]models.Anchor{{Date: day(2020, 1, 1)}}))
}

func TestAnchorsReturnsCopy(t *testing.T) {
	ds, err := New([]models.Anchor{{Date: day(2020, 1, 1), Rate: 1}, {Date: day(2020, 1, 4), Rate: 4}})
	require.NoError(t, err)

	a := ds.Anchors()
	a[0].Rate = 99
	assert.Equal(t, 1.0, ds.Anchors()[0].Rate)
}
