package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(statsURL, dataURL string) *Client {
	c := NewClient(statsURL, dataURL, 5*time.Second)
	c.retryDelay = time.Millisecond
	return c
}

func TestBoxScoreAdvanced(t *testing.T) {
	var gotPath, gotQuery, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte(`{"resultSets":[{"name":"GameSummary","headers":["A"],"rowSet":[[1.5,"x",null]]}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	resp, err := c.BoxScoreAdvanced(context.Background(), 21500001)
	require.NoError(t, err)

	assert.Equal(t, "/stats/boxscoreadvanced/", gotPath)
	assert.Contains(t, gotQuery, "GameID=0021500001")
	assert.Equal(t, "https://www.nba.com/", gotReferer)

	require.Len(t, resp.ResultSets, 1)
	assert.Equal(t, "GameSummary", resp.ResultSets[0].Name)
	require.Len(t, resp.ResultSets[0].RowSet, 1)
	assert.Equal(t, 1.5, resp.ResultSets[0].RowSet[0][0])
	assert.Nil(t, resp.ResultSets[0].RowSet[0][2])
}

func TestGetRetriesOnServiceUnavailable(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"resultSets":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	_, err := c.get(context.Background(), server.URL+"/stats/commonteamyears/", "test")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestGetDoesNotRetryClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	_, err := c.get(context.Background(), server.URL+"/stats/commonteamyears/", "test")
	require.Error(t, err)
	assert.False(t, IsTransient(err))
	assert.Equal(t, 1, attempts)
}

func TestGetExhaustedRetriesAreTransient(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	_, err := c.get(context.Background(), server.URL+"/stats/commonteamyears/", "test")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Equal(t, 4, attempts)
}

func TestNetworkFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := newTestClient(server.URL, server.URL)
	_, err := c.get(context.Background(), server.URL+"/stats/commonteamyears/", "test")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestCommonTeamYears(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"name":"TeamYears","headers":[],"rowSet":[
			["00",1610612744,1946,2025,"GSW"],
			["00",1610610025,1947,1955,null]
		]}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	teams, err := c.CommonTeamYears(context.Background(), "00")
	require.NoError(t, err)
	require.Len(t, teams, 2)

	require.NotNil(t, teams[0].TeamID)
	assert.Equal(t, float64(1610612744), *teams[0].TeamID)
	require.NotNil(t, teams[0].Abbreviation)
	assert.Equal(t, "GSW", *teams[0].Abbreviation)

	// Defunct franchises have no abbreviation.
	assert.Nil(t, teams[1].Abbreviation)
}

func TestPlayerCardByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jsonp/5s/json/cms/noseason/players/stephen_curry/playercard.json", r.URL.Path)
		w.Write([]byte(`callbackWrapper({"sports_content":{"player":{"meta":{"first_name":"Stephen","last_name":"Curry","position_granular_full":"Point Guard"}}}});`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	card, err := c.PlayerCardByCode(context.Background(), "stephen_curry")
	require.NoError(t, err)

	meta := card.SportsContent.Player.Meta
	assert.Equal(t, "Stephen", meta.FirstName)
	assert.Equal(t, "Curry", meta.LastName)
	assert.Equal(t, "Point Guard", meta.PositionGranularFull)
}

func TestPlayerAge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"name":"SeasonTotals","headers":[],"rowSet":[
			[201939,"2014-15",null,"GSW",26.0,27.0],
			[201939,"2015-16",null,"GSW",27.0,28.0]
		]}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	age, err := c.PlayerAge(context.Background(), 201939)
	require.NoError(t, err)

	// Age comes from the last row of the season totals.
	assert.Equal(t, 28, age)
}

func TestPlayerAgeEmptyProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"name":"SeasonTotals","headers":[],"rowSet":[]}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	age, err := c.PlayerAge(context.Background(), 12345)
	require.NoError(t, err)
	assert.Zero(t, age)
}
