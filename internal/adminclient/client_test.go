package adminclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListServices_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/services", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"services":[
			{"id":"a","name":"Dog Walking","price_string":"$30/hour","description":"walkies","category":"Regular"},
			{"id":"b","name":"Cat Sitting","price_string":"$25/visit","description":"purrs","category":"Specials"}
		]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	services, err := client.ListServices(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "a", services[0].ID)
	assert.Equal(t, "$30/hour", services[0].PriceString)
	assert.Equal(t, "Specials", services[1].Category)
}

func TestListServices_EmptyCatalog(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"services":[]}`))
	}))
	defer ts.Close()

	services, err := NewClient(ts.URL).ListServices(context.Background())

	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestListServices_MalformedBody(t *testing.T) {
	bodies := []string{
		`{"message":"hello"}`,
		`{"services":"not an array"}`,
		`{"services":null}`,
		`not json at all`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			_, err := NewClient(ts.URL).ListServices(context.Background())

			require.Error(t, err)
			assert.Equal(t, KindServer, KindOf(err))
		})
	}
}

func TestErrorNormalization_JSONErrorField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"name, price, and description are required"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).CreateService(context.Background(), ServiceFields{Name: "X", PriceString: "$1", Description: "d"}, "tok")

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "name, price, and description are required", err.Error())
}

func TestErrorNormalization_JSONMessageFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"service not found"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).UpdateService(context.Background(), "x", ServiceFields{Name: "X", PriceString: "$1", Description: "d"}, "tok")

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "service not found", err.Error())
}

func TestErrorNormalization_NonJSONBodyTruncated(t *testing.T) {
	longBody := strings.Repeat("x", 500)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(longBody))
	}))
	defer ts.Close()

	err := NewClient(ts.URL).DeleteService(context.Background(), "x", "tok")

	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.LessOrEqual(t, len(err.Error()), len("HTTP 500 Internal Server Error: ")+maxErrorBodyExcerpt)
}

func TestErrorNormalization_EmptyBodyUsesStatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := NewClient(ts.URL).ReorderServices(context.Background(), []string{"a"}, "tok")

	require.Error(t, err)
	assert.Equal(t, "HTTP 502 Bad Gateway", err.Error())
}

func TestErrorNormalization_TransportErrorNeverRaw(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.ListServices(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "could not reach the server")
}

func TestDeleteService_NoContentIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	err := NewClient(ts.URL).DeleteService(context.Background(), "a", "tok")

	assert.NoError(t, err)
}

func TestMutatingCalls_SendBearerToken(t *testing.T) {
	var header string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"new"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).CreateService(context.Background(), ServiceFields{Name: "X", PriceString: "$1", Description: "d"}, "secret-token")

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", header)
}

func TestLogin_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/admin/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"signed-jwt","user":{"username":"debbie"}}`))
	}))
	defer ts.Close()

	result, err := NewClient(ts.URL).Login(context.Background(), "debbie", "woof")

	require.NoError(t, err)
	assert.Equal(t, "signed-jwt", result.Token)
	assert.Equal(t, "debbie", result.User.Username)
}

func TestLogin_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid username or password"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).Login(context.Background(), "debbie", "wrong")

	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"username":"debbie"}}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).Login(context.Background(), "debbie", "woof")

	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestReorderServices_SendsFullPermutation(t *testing.T) {
	var body string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/services/order", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer ts.Close()

	err := NewClient(ts.URL).ReorderServices(context.Background(), []string{"b", "a", "c"}, "tok")

	require.NoError(t, err)
	assert.JSONEq(t, `{"orderedIds":["b","a","c"]}`, body)
}

func TestSubmitForms_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"received"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	assert.NoError(t, client.SubmitBookingRequest(context.Background(), BookingForm{
		ServiceName: "Dog Walking", CustomerName: "Jamie", CustomerEmail: "jamie@example.com",
		PetName: "Rex", PreferredDateTime: "tomorrow",
	}))
	assert.NoError(t, client.SubmitGeneralEnquiry(context.Background(), EnquiryForm{
		Name: "Sam", Email: "sam@example.com", Message: "Do you board rabbits?",
	}))
}
