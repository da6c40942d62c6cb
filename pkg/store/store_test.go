package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "marks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []*Trademark {
	return []*Trademark{
		{
			ApplicationNumber: "40-2021-0001",
			ProductName:       "스타벅스",
			ProductNameEng:    "STARBUCKS",
			ApplicationDate:   "20210105",
			RegisterStatus:    StatusRegistered,
			MainProductCodes:  []string{"30", "43"},
		},
		{
			ApplicationNumber: "40-2021-0002",
			ProductName:       "커피빈",
			ProductNameEng:    "COFFEE BEAN",
			ApplicationDate:   "20210310",
			RegisterStatus:    StatusPending,
			MainProductCodes:  []string{"43"},
		},
		{
			ApplicationNumber: "40-2022-0003",
			ProductName:       "스타박스",
			ApplicationDate:   "20220220",
			RegisterStatus:    StatusRejected,
			MainProductCodes:  []string{"35"},
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	tm := sampleRecords()[0]
	require.NoError(t, s.Put(tm))

	got, err := s.Get("40-2021-0001")
	require.NoError(t, err)
	assert.Equal(t, tm, got)
}

func TestPutRequiresApplicationNumber(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Put(&Trademark{ProductName: "이름만"}))
	assert.Error(t, s.Put(nil))
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("40-9999-9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put(sampleRecords()[0]))

	existed, err := s.Delete("40-2021-0001")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Delete("40-2021-0001")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCountAndForEach(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutBatch(sampleRecords()))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var names []string
	require.NoError(t, s.ForEach(func(tm *Trademark) error {
		names = append(names, tm.ProductName)
		return nil
	}))
	assert.Len(t, names, 3)
}

func TestMetaQueries(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutBatch(sampleRecords()))

	statuses, err := s.RegisterStatuses()
	require.NoError(t, err)
	// Byte order of the UTF-8 encodings: 거절 < 등록 < 출원.
	assert.Equal(t, []string{StatusRejected, StatusRegistered, StatusPending}, statuses)

	codes, err := s.MainProductCodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"30", "35", "43"}, codes)
}

func TestImportJSON(t *testing.T) {
	s := openTestStore(t)

	records := sampleRecords()
	records[0].PublicationDate = "null" // raw export placeholder
	records = append(records, &Trademark{ProductName: "번호없음"})
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	stats, err := s.ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)

	got, err := s.Get("40-2021-0001")
	require.NoError(t, err)
	assert.Empty(t, got.PublicationDate)
}

func TestDateByField(t *testing.T) {
	tm := &Trademark{
		ApplicationDate:   "20210105",
		PublicationDate:   "20210601",
		RegistrationDates: []string{"20211201", "20220101"},
	}
	assert.Equal(t, []string{"20210105"}, tm.DateByField(DateFieldApplication))
	assert.Equal(t, []string{"20210601"}, tm.DateByField(DateFieldPublication))
	assert.Equal(t, []string{"20211201", "20220101"}, tm.DateByField(DateFieldRegistration))
	// Unknown selectors fall back to the application date.
	assert.Equal(t, []string{"20210105"}, tm.DateByField("bogus"))
}
