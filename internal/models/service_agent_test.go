package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIDList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CategoryIDList
		wantErr bool
	}{
		{name: "plain id array", input: `[3, 7]`, want: CategoryIDList{3, 7}},
		{name: "object array", input: `[{"id": 3}, {"id": 7}]`, want: CategoryIDList{3, 7}},
		{name: "empty array", input: `[]`, want: CategoryIDList{}},
		{name: "neither shape", input: `"3,7"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CategoryIDList
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryIDList_UnmarshalInsideRequest(t *testing.T) {
	var req CreateServiceAgentRequest
	body := `{"first_name":"Ravi","expert_at":[{"id":2},{"id":5}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, CategoryIDList{2, 5}, req.ExpertAt)
}
