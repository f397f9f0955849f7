package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/costamaya/backoffice/internal/models"
)

func TestListYachts_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/yachts" {
			t.Errorf("path = %s, want /yachts", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"name":"Perla del Caribe","categoryId":3,"capacity":12,"pricePerDay":45000}],"message":""}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	yachts, err := client.ListYachts(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("ListYachts() error = %v", err)
	}
	if len(yachts) != 1 {
		t.Fatalf("ListYachts() returned %d yachts, want 1", len(yachts))
	}
	if yachts[0].Name != "Perla del Caribe" {
		t.Errorf("Name = %q, want 'Perla del Caribe'", yachts[0].Name)
	}
	if yachts[0].CategoryID != 3 {
		t.Errorf("CategoryID = %d, want 3", yachts[0].CategoryID)
	}
}

func TestListYachts_SendsFilterParams(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.ListYachts(context.Background(), ListParams{CategoryID: 3, StateID: 23})
	if err != nil {
		t.Fatalf("ListYachts() error = %v", err)
	}

	if got := query["categoryId"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("categoryId = %v, want [3]", got)
	}
	if got := query["stateId"]; len(got) != 1 || got[0] != "23" {
		t.Errorf("stateId = %v, want [23]", got)
	}
	if _, ok := query["typeId"]; ok {
		t.Error("zero-valued typeId must be omitted")
	}
}

func TestErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"El nombre es obligatorio"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.CreateYacht(context.Background(), YachtInput{})
	if err == nil {
		t.Fatal("Expected an error for a 422 response")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error in chain, got %T", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if got := ServerMessage(err); got != "El nombre es obligatorio" {
		t.Errorf("ServerMessage() = %q, want the backend's wording", got)
	}
}

func TestServerMessage_NonAPIError(t *testing.T) {
	if got := ServerMessage(errors.New("dial tcp: connection refused")); got != "" {
		t.Errorf("ServerMessage() = %q, want empty for non-API errors", got)
	}
}

func TestLogin_SetsTokenForSubsequentRequests(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["email"] != "admin@costamaya.mx" {
				t.Errorf("email = %q, want admin@costamaya.mx", creds["email"])
			}
			w.Write([]byte(`{"access_token":"tok-123","user":{"id":1,"name":"Admin"},"message":"ok"}`))
		case "/states":
			authHeader = r.Header.Get("Authorization")
			w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	result, err := client.Login(context.Background(), "admin@costamaya.mx", "secreto")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q, want tok-123", result.AccessToken)
	}
	if result.User.Name != "Admin" {
		t.Errorf("User.Name = %q, want Admin", result.User.Name)
	}

	if _, err := client.States(context.Background()); err != nil {
		t.Fatalf("States() error = %v", err)
	}
	if authHeader != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want 'Bearer tok-123'", authHeader)
	}
}

func TestLogin_FailureReturnsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Credenciales incorrectas"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.Login(context.Background(), "x@y.mx", "bad")
	if err == nil {
		t.Fatal("Expected an error for a 401 response")
	}
	if got := ServerMessage(err); got != "Credenciales incorrectas" {
		t.Errorf("ServerMessage() = %q, want the backend's wording", got)
	}
}

func TestMunicipalities_ScopedToState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("stateId"); got != "23" {
			t.Errorf("stateId = %q, want 23", got)
		}
		w.Write([]byte(`{"data":[{"id":2301,"name":"Benito Juárez","stateId":23}]}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	municipalities, err := client.Municipalities(context.Background(), 23)
	if err != nil {
		t.Fatalf("Municipalities() error = %v", err)
	}
	if len(municipalities) != 1 || municipalities[0].StateID != 23 {
		t.Errorf("Municipalities() = %v, want one entry for state 23", municipalities)
	}
}

func TestUpdateReservationStatus_RefusesIllegalTransitionLocally(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	confirmed := models.Reservation{ID: 9, Status: models.ReservationConfirmed}

	_, err := client.UpdateReservationStatus(context.Background(), confirmed, models.ReservationCancelled)
	if err == nil {
		t.Fatal("Expected an error for a confirmed-to-cancelled move")
	}
	if requests != 0 {
		t.Errorf("Expected no request on the wire, got %d", requests)
	}
}

func TestUpdateReservationStatus_PatchesStatus(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"data":{"id":9,"status":"confirmed"},"message":"Estado actualizado"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	pending := models.Reservation{ID: 9, Status: models.ReservationPending}

	updated, err := client.UpdateReservationStatus(context.Background(), pending, models.ReservationConfirmed)
	if err != nil {
		t.Fatalf("UpdateReservationStatus() error = %v", err)
	}
	if body["status"] != "confirmed" {
		t.Errorf("patch body status = %q, want confirmed", body["status"])
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("Status = %q, want confirmed", updated.Status)
	}
}

func TestDeleteYacht_NoBodyExpected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte(`{"data":null,"message":"Yate eliminado"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	if err := client.DeleteYacht(context.Background(), 4); err != nil {
		t.Fatalf("DeleteYacht() error = %v", err)
	}
}
