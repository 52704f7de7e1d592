package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreatedAtFormats(t *testing.T) {
	cases := []struct {
		name      string
		payload   string
		wantNil   bool
		wantNaive bool
		want      time.Time
	}{
		{name: "local date-time", payload: `{"createdAt":"2024-03-05T09:07:00"}`, wantNaive: true, want: time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)},
		{name: "local with fraction", payload: `{"createdAt":"2024-03-05T09:07:00.123456"}`, wantNaive: true, want: time.Date(2024, 3, 5, 9, 7, 0, 123456000, time.UTC)},
		{name: "space separated", payload: `{"createdAt":"2024-03-05 09:07:00"}`, wantNaive: true, want: time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)},
		{name: "rfc3339", payload: `{"createdAt":"2024-03-05T00:07:00Z"}`, want: time.Date(2024, 3, 5, 0, 7, 0, 0, time.UTC)},
		{name: "null", payload: `{"createdAt":null}`, wantNil: true},
		{name: "missing", payload: `{}`, wantNil: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c model.Comment
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &c))

			if tc.wantNil {
				assert.Nil(t, c.CreatedAt)
				return
			}
			require.NotNil(t, c.CreatedAt)
			assert.Equal(t, tc.wantNaive, c.CreatedAt.Naive)
			assert.True(t, tc.want.Equal(c.CreatedAt.Time))
		})
	}
}

func TestTimestampUnknownFormatIsAbsent(t *testing.T) {
	var comments []model.Comment
	payload := `[
		{"id":1,"createdAt":"2024-03-05T09:07:00"},
		{"id":2,"createdAt":"yesterday"},
		{"id":3,"createdAt":[2024,3,5,9,7]}
	]`

	require.NoError(t, json.Unmarshal([]byte(payload), &comments))

	require.Len(t, comments, 3)
	assert.False(t, comments[0].CreatedAt.IsZero())
	require.NotNil(t, comments[1].CreatedAt)
	assert.True(t, comments[1].CreatedAt.IsZero())
	require.NotNil(t, comments[2].CreatedAt)
	assert.True(t, comments[2].CreatedAt.IsZero())
}

func TestTimestampRoundTripKeepsNaive(t *testing.T) {
	var in model.Comment
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"createdAt":"2024-03-05T09:07:00"}`), &in))

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out model.Comment
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestTimestampIn(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	aware := model.Timestamp{Time: time.Date(2024, 3, 5, 0, 7, 0, 0, time.UTC)}
	naive := model.Timestamp{Time: time.Date(2024, 3, 5, 0, 7, 0, 0, time.UTC), Naive: true}

	assert.Equal(t, 9, aware.In(seoul).Hour())
	assert.Equal(t, 0, naive.In(seoul).Hour())
}

func TestViewerGating(t *testing.T) {
	owner := int64(7)
	other := int64(8)
	c := model.Comment{ID: 1, UserID: owner}

	cases := []struct {
		name       string
		viewer     model.Viewer
		wantEdit   bool
		wantDelete bool
	}{
		{name: "owner", viewer: model.Viewer{UserID: &owner}, wantEdit: true, wantDelete: true},
		{name: "owner admin", viewer: model.Viewer{UserID: &owner, IsAdmin: true}, wantEdit: false, wantDelete: true},
		{name: "admin", viewer: model.Viewer{UserID: &other, IsAdmin: true}, wantEdit: false, wantDelete: true},
		{name: "other user", viewer: model.Viewer{UserID: &other}},
		{name: "anonymous", viewer: model.Viewer{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantEdit, tc.viewer.CanEdit(c))
			assert.Equal(t, tc.wantDelete, tc.viewer.CanDelete(c))
		})
	}
}
