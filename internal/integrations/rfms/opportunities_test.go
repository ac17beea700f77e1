package rfms

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

var sampleDetails = OpportunityDetails{
	Date:          "2024-06-01",
	TimeSlot:      "9-11",
	EstimatorName: "Bob Smith",
	Contact:       janeDoe,
	Job:           domain.Job{FlooringType: "Hardwood", Rooms: "3", Notes: "Dog in yard"},
}

func TestBuildOpportunityNote(t *testing.T) {
	want := "Estimate appointment: 2024-06-01 9-11\n" +
		"Estimator: Bob Smith\n" +
		"Flooring: Hardwood\n" +
		"Rooms: 3\n" +
		"Address: 1 Main St, Springfield, IL 62701\n" +
		"Notes: Dog in yard"
	assert.Equal(t, want, BuildOpportunityNote(sampleDetails))
}

func TestClient_CreateOpportunity(t *testing.T) {
	var got opportunityRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opportunity", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"result":{"opportunityId":"OP-1"}}`)
	})

	id, err := client.CreateOpportunity(context.Background(), "3001", sampleDetails)
	require.NoError(t, err)
	assert.Equal(t, "OP-1", id)
	assert.Equal(t, "3001", got.CustomerID)
	assert.Equal(t, BuildOpportunityNote(sampleDetails), got.Note)
	assert.Equal(t, 1, got.StoreNumber)
	assert.Equal(t, "HOUSE", got.Salesperson1)
}

func TestClient_CreateOpportunity_IDPrecedence(t *testing.T) {
	cases := map[string]string{
		`{"opportunityId":"a","id":"b"}`:   "a",
		`{"opportunityID":"a","Id":"b"}`:   "a",
		`{"OpportunityId":"a","number":7}`: "a",
		`{"id":"b","number":7}`:            "b",
		`{"number":7}`:                     "7",
		`{"detail":{"Id":"d"}}`:            "d",
	}

	for body, want := range cases {
		t.Run(body, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})

			id, err := client.CreateOpportunity(context.Background(), "1", sampleDetails)
			require.NoError(t, err)
			assert.Equal(t, want, id)
		})
	}
}

func TestClient_CreateOpportunity_RetriesAlternateEndpointOnce(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/opportunity" {
			writeJSON(w, http.StatusNotFound, `{"Message":"No HTTP resource"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"OP-9"}`)
	})

	id, err := client.CreateOpportunity(context.Background(), "1", sampleDetails)
	require.NoError(t, err)
	assert.Equal(t, "OP-9", id)
	assert.Equal(t, []string{"/opportunity", "/opportunities"}, paths)
}

func TestClient_CreateOpportunity_BothEndpointsFail(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{"message":"upstream"}`)
	})

	_, err := client.CreateOpportunity(context.Background(), "1", sampleDetails)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFMS error 502: upstream")
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestClient_CreateOpportunity_NoIdentifier(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success"}`)
	})

	_, err := client.CreateOpportunity(context.Background(), "1", sampleDetails)
	assert.ErrorIs(t, err, ErrDataShape)
}
