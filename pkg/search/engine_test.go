package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulsoft/markserve/pkg/store"
)

func fixtures() []*store.Trademark {
	return []*store.Trademark{
		{
			ApplicationNumber: "40-2021-0001",
			ProductName:       "스타벅스",
			ProductNameEng:    "STARBUCKS",
			ApplicationDate:   "20210105",
			RegisterStatus:    store.StatusRegistered,
			MainProductCodes:  []string{"30", "43"},
		},
		{
			ApplicationNumber: "40-2021-0002",
			ProductName:       "스타박스",
			ApplicationDate:   "20210310",
			RegisterStatus:    store.StatusPending,
			MainProductCodes:  []string{"43"},
		},
		{
			ApplicationNumber: "40-2022-0003",
			ProductName:       "커피빈",
			ProductNameEng:    "COFFEE BEAN",
			ApplicationDate:   "20220220",
			RegisterStatus:    store.StatusRegistered,
			MainProductCodes:  []string{"35", "43"},
			RegistrationDates: []string{"20221130"},
		},
		{
			ApplicationNumber: "40-2023-0004",
			ProductName:       "할리스",
			ApplicationDate:   "20230401",
			RegisterStatus:    store.StatusRejected,
			MainProductCodes:  []string{"43"},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "marks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.PutBatch(fixtures()))

	e, err := NewEngine(s, Options{})
	require.NoError(t, err)
	return e
}

func appNumbers(r Result) []string {
	nums := make([]string, len(r.Records))
	for i, tm := range r.Records {
		nums[i] = tm.ApplicationNumber
	}
	return nums
}

func TestSearchNoFilters(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Records, 4)
}

func TestSearchStatusFilter(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{Status: store.StatusRegistered})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.ElementsMatch(t, []string{"40-2021-0001", "40-2022-0003"}, appNumbers(res))
}

func TestSearchProductCodeFilter(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{ProductCode: "35"})
	require.NoError(t, err)
	assert.Equal(t, []string{"40-2022-0003"}, appNumbers(res))
}

func TestSearchDateRangeFilter(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Search(Params{FromDate: "20210101", ToDate: "20211231"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	// Registration-date field: only 커피빈 carries one in range.
	res, err = e.Search(Params{
		FromDate:  "20220101",
		ToDate:    "20221231",
		DateField: store.DateFieldRegistration,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"40-2022-0003"}, appNumbers(res))

	// Malformed bounds are ignored rather than failing the request.
	res, err = e.Search(Params{FromDate: "2021-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
}

func TestSearchFuzzyQuery(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{Query: "스타벅스"})
	require.NoError(t, err)

	// 스타벅스 exact, 스타박스 by ratio; 커피빈 and 할리스 filtered out.
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"40-2021-0001", "40-2021-0002"}, appNumbers(res))
}

func TestSearchEnglishQuery(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{Query: "starbucks"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Records)
	assert.Equal(t, "40-2021-0001", res.Records[0].ApplicationNumber)
}

func TestSearchApplicationNumberQuery(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{Query: "40-2023-0004"})
	require.NoError(t, err)
	assert.Equal(t, []string{"40-2023-0004"}, appNumbers(res))
}

func TestSearchInitialPatternQuery(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Search(Params{Query: "ㅅㅌㅂㅅ"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"40-2021-0001", "40-2021-0002"}, appNumbers(res))

	// Mid-name containment works too.
	res, err = e.Search(Params{Query: "ㅂㅅ"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = e.Search(Params{Query: "ㄱㄴㄷ"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearchQueryWithFilterCombination(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Search(Params{Query: "스타벅스", Status: store.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, []string{"40-2021-0002"}, appNumbers(res))
}

func TestSearchPagination(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Search(Params{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Records, 2)

	res, err = e.Search(Params{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Records, 1)

	res, err = e.Search(Params{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Empty(t, res.Records)
}

// Config reloads call SetOptions from the watcher goroutine while the
// request loop keeps searching; both sides must stay race-free.
func TestSearchDuringOptionsReload(t *testing.T) {
	e := newTestEngine(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			e.SetOptions(Options{Threshold: 0.5, RerankLimit: 5, MaxLimit: 16 + i})
		}
	}()
	for i := 0; i < 200; i++ {
		res, err := e.Search(Params{Query: "스타벅스"})
		assert.NoError(t, err)
		assert.NotZero(t, res.Total)
	}
	<-done
}

func TestPrefixCandidates(t *testing.T) {
	e := newTestEngine(t)

	assert.ElementsMatch(t, []string{"40-2021-0001", "40-2021-0002"},
		e.nameIndex().PrefixCandidates("스타", 0))
	assert.Equal(t, []string{"40-2021-0001"}, e.nameIndex().PrefixCandidates("star", 0))
	// Initials prefix hits the indexed initials forms.
	assert.ElementsMatch(t, []string{"40-2021-0001", "40-2021-0002"},
		e.nameIndex().PrefixCandidates("ㅅㅌ", 0))
	assert.Empty(t, e.nameIndex().PrefixCandidates("없는이름", 0))
}

func TestSuggest(t *testing.T) {
	e := newTestEngine(t)

	got := e.Suggest("starbuks", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "starbucks", got[0].Name)

	// Initial patterns and blanks yield nothing.
	assert.Nil(t, e.Suggest("ㅅㅌㅂㅅ", 3))
	assert.Nil(t, e.Suggest("   ", 3))
}
