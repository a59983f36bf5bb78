package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"enrollhub/internal/payment/service"
	"enrollhub/internal/payment/store"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/requestcontext"
)

type registrationDirectoryStub struct{ ids map[string]bool }

func (s registrationDirectoryStub) Exists(_ context.Context, regID id.RegistrationID) (bool, error) {
	return s.ids[regID.String()], nil
}

// The payment handler is tested against the real service and memory store:
// the tri-state body decoding only means something when it reaches an
// actual partial update.
type PaymentHandlerSuite struct {
	suite.Suite
	router        chi.Router
	registrations registrationDirectoryStub
	now           time.Time
}

func (s *PaymentHandlerSuite) SetupTest() {
	s.registrations = registrationDirectoryStub{ids: map[string]bool{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(store.NewInMemory(), s.registrations, logger)
	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

func (s *PaymentHandlerSuite) knownRegistration() id.RegistrationID {
	regID := id.NewRegistrationID()
	s.registrations.ids[regID.String()] = true
	return regID
}

func (s *PaymentHandlerSuite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req = req.WithContext(requestcontext.WithTime(req.Context(), s.now))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PaymentHandlerSuite) createPayment() map[string]any {
	body := []byte(`{
		"registration_id": "` + s.knownRegistration().String() + `",
		"amount": "1000.00",
		"payment_method": "bank_transfer",
		"transaction_id": "TXN-1"
	}`)
	w := s.do(http.MethodPost, "/payments", body)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *PaymentHandlerSuite) TestCreate() {
	resp := s.createPayment()
	s.Equal("pending", resp["payment_status"])
	s.Equal("1000.00", resp["amount"], "amount is a string on the wire")
	s.Nil(resp["payment_date"])
}

func (s *PaymentHandlerSuite) TestCreateRejectsBadAmount() {
	body := []byte(`{
		"registration_id": "` + s.knownRegistration().String() + `",
		"amount": "10.999",
		"payment_method": "cash"
	}`)
	w := s.do(http.MethodPost, "/payments", body)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PaymentHandlerSuite) TestCreateUnknownRegistration() {
	body := []byte(`{
		"registration_id": "` + id.NewRegistrationID().String() + `",
		"amount": "10.00",
		"payment_method": "cash"
	}`)
	w := s.do(http.MethodPost, "/payments", body)
	s.Equal(http.StatusNotFound, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("reference_not_found", resp["error"])
}

func (s *PaymentHandlerSuite) TestUpdateStatusOmittedFieldsUntouched() {
	created := s.createPayment()
	payID := created["id"].(string)

	w := s.do(http.MethodPatch, "/payments/"+payID+"/status", []byte(`{"payment_status": "paid"}`))
	s.Require().Equal(http.StatusOK, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("paid", resp["payment_status"])
	s.Equal("TXN-1", resp["transaction_id"], "omitted field keeps stored value")
	s.Equal(s.now.Format(time.RFC3339), resp["payment_date"], "absent date defaults to request time")
}

func (s *PaymentHandlerSuite) TestUpdateStatusNullClears() {
	created := s.createPayment()
	payID := created["id"].(string)

	w := s.do(http.MethodPatch, "/payments/"+payID+"/status", []byte(`{"payment_status": "failed", "transaction_id": null}`))
	s.Require().Equal(http.StatusOK, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Nil(resp["transaction_id"], "explicit null clears stored value")
}

func (s *PaymentHandlerSuite) TestUpdateStatusUnknownPayment() {
	w := s.do(http.MethodPatch, "/payments/"+id.NewPaymentID().String()+"/status", []byte(`{"payment_status": "paid"}`))
	s.Equal(http.StatusNotFound, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("not_found", resp["error"])
}

func (s *PaymentHandlerSuite) TestListAllEmpty() {
	w := s.do(http.MethodGet, "/payments", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}
