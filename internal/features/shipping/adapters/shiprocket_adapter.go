package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/core/httpclient"
	"github.com/miteshhgoyal/gearmates/internal/core/logger"
	"github.com/miteshhgoyal/gearmates/internal/features/shipping/domain"

	"go.uber.org/zap"
)

const pickupDateLayout = "2006-01-02"

// ShiprocketAdapter implements the CarrierGateway port against the
// aggregator's external JSON API. It is stateless except for the cached
// bearer token.
type ShiprocketAdapter struct {
	client *http.Client
	config config.ShiprocketConfig

	// mu serializes token refresh so concurrent callers never authenticate
	// twice; the provider may rotate tokens on each login.
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewShiprocketAdapter creates a new ShiprocketAdapter.
func NewShiprocketAdapter(cfg config.ShiprocketConfig, timeout time.Duration) *ShiprocketAdapter {
	return &ShiprocketAdapter{
		client: httpclient.NewClient(timeout),
		config: cfg,
		now:    time.Now,
	}
}

// authenticate exchanges the stored credentials for a bearer token.
// Callers must hold a.mu.
func (a *ShiprocketAdapter) authenticate(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"email":    a.config.Email,
		"password": a.config.Password,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	defer resp.Body.Close()

	var loginResp struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}

	if loginResp.Token == "" {
		msg := loginResp.Message
		if msg == "" {
			msg = "no token received"
		}
		return fmt.Errorf("%w: %s", domain.ErrAuth, msg)
	}

	a.token = loginResp.Token
	a.tokenExpiry = a.now().Add(time.Duration(a.config.TokenTTLHours) * time.Hour)
	logger.Get().Debug("Carrier token refreshed", zap.Time("expires_at", a.tokenExpiry))
	return nil
}

// getToken returns the cached token, refreshing it when absent or expired.
func (a *ShiprocketAdapter) getToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && a.now().Before(a.tokenExpiry) {
		return a.token, nil
	}
	if err := a.authenticate(ctx); err != nil {
		return "", err
	}
	return a.token, nil
}

// doJSON issues an authenticated request and decodes the response body.
func (a *ShiprocketAdapter) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	token, err := a.getToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// srEnvelope covers the provider's two success conventions: status/status_code
// flags on some endpoints, a bare success boolean on others.
type srEnvelope struct {
	Status     int    `json:"status"`
	StatusCode int    `json:"status_code"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

func (e srEnvelope) ok() bool {
	return e.Status == 200 || e.StatusCode == 1 || e.Success
}

func (e srEnvelope) failureMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// CreateOrder maps the booking into the provider's ad-hoc order schema and
// submits it.
func (a *ShiprocketAdapter) CreateOrder(ctx context.Context, req domain.BookingRequest) (*domain.RemoteOrder, error) {
	paymentMethod := "Prepaid"
	if req.COD {
		paymentMethod = "COD"
	}

	items := make([]srOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		sku := item.SKU
		if sku == "" {
			sku = item.Name
		}
		items = append(items, srOrderItem{
			Name:         item.Name,
			SKU:          sku,
			Units:        item.Units,
			SellingPrice: item.SellingPrice,
		})
	}

	country := req.Recipient.Country
	if country == "" {
		country = "India"
	}

	payload := srCreateOrderRequest{
		OrderID:             req.Reference,
		OrderDate:           req.OrderDate.Format(pickupDateLayout),
		PickupLocation:      req.PickupLocation,
		BillingCustomerName: req.Recipient.FirstName,
		BillingLastName:     req.Recipient.LastName,
		BillingAddress:      req.Recipient.Street,
		BillingCity:         req.Recipient.City,
		BillingPincode:      req.Recipient.Pincode,
		BillingState:        req.Recipient.State,
		BillingCountry:      country,
		BillingEmail:        req.Recipient.Email,
		BillingPhone:        req.Recipient.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       paymentMethod,
		SubTotal:            req.SubTotal,
		Length:              req.Length,
		Breadth:             req.Breadth,
		Height:              req.Height,
		Weight:              req.Weight,
	}

	var resp srCreateOrderResponse
	if err := a.doJSON(ctx, http.MethodPost, "/orders/create/adhoc", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCreateOrder, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCreateOrder, resp.failureMessage("provider rejected order"))
	}

	remote := &domain.RemoteOrder{OrderID: resp.Data.OrderID}
	if len(resp.Data.Shipments) > 0 {
		remote.ShipmentID = resp.Data.Shipments[0].ShipmentID
	}
	return remote, nil
}

// CheckServiceability returns the provider-ranked courier options.
func (a *ShiprocketAdapter) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string, weight float64, cod bool, declaredValue float64) ([]domain.CourierOption, error) {
	codFlag := "0"
	if cod {
		codFlag = "1"
	}
	query := url.Values{
		"pickup_postcode":   {pickupPincode},
		"delivery_postcode": {deliveryPincode},
		"weight":            {strconv.FormatFloat(weight, 'f', -1, 64)},
		"cod":               {codFlag},
		"declared_value":    {strconv.FormatFloat(declaredValue, 'f', -1, 64)},
	}

	var resp srServiceabilityResponse
	if err := a.doJSON(ctx, http.MethodGet, "/courier/serviceability/?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceability, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", domain.ErrServiceability, resp.failureMessage("serviceability lookup rejected"))
	}

	options := make([]domain.CourierOption, 0, len(resp.Data.AvailableCourierCompanies))
	for _, c := range resp.Data.AvailableCourierCompanies {
		options = append(options, domain.CourierOption{
			CourierID:     c.CourierCompanyID,
			Name:          c.CourierName,
			Rate:          c.Rate,
			EstimatedDays: c.EstimatedDeliveryDays,
		})
	}
	return options, nil
}

// AssignAWB requests a waybill for the shipment.
func (a *ShiprocketAdapter) AssignAWB(ctx context.Context, shipmentID, courierID int64) (*domain.AWBAssignment, error) {
	payload := map[string]int64{"shipment_id": shipmentID}
	if courierID != 0 {
		payload["courier_id"] = courierID
	}

	var resp srAssignAWBResponse
	if err := a.doJSON(ctx, http.MethodPost, "/courier/assign/awb", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssignAWB, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssignAWB, resp.failureMessage("provider rejected awb assignment"))
	}

	// Some deployments nest the payload under response.data, others under data.
	data := resp.Response.Data
	if data.AWBCode == "" {
		data = resp.Data
	}
	return &domain.AWBAssignment{
		AWBCode:     data.AWBCode,
		CourierID:   data.CourierCompanyID,
		CourierName: data.CourierName,
	}, nil
}

// GenerateLabel returns the label document URL for the given shipments.
func (a *ShiprocketAdapter) GenerateLabel(ctx context.Context, shipmentIDs ...int64) (string, error) {
	var resp srLabelResponse
	payload := map[string][]int64{"shipment_id": shipmentIDs}
	if err := a.doJSON(ctx, http.MethodPost, "/courier/generate/label", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerateLabel, err)
	}
	if !resp.ok() {
		return "", fmt.Errorf("%w: %s", domain.ErrGenerateLabel, resp.failureMessage("provider rejected label generation"))
	}

	labelURL := resp.Data.LabelURL
	if labelURL == "" {
		labelURL = resp.LabelURL
	}
	return labelURL, nil
}

// SchedulePickup books the carrier visit, defaulting to tomorrow.
func (a *ShiprocketAdapter) SchedulePickup(ctx context.Context, pickupDate time.Time, shipmentIDs ...int64) (*domain.PickupConfirmation, error) {
	if pickupDate.IsZero() {
		pickupDate = a.now().AddDate(0, 0, 1)
	}

	payload := srPickupRequest{
		ShipmentID: shipmentIDs,
		PickupDate: pickupDate.Format(pickupDateLayout),
	}

	var resp srPickupResponse
	if err := a.doJSON(ctx, http.MethodPost, "/courier/generate/pickup", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchedulePickup, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("%w: %s", domain.ErrSchedulePickup, resp.failureMessage("provider rejected pickup request"))
	}

	status := resp.Data.PickupStatus
	if status == "" {
		status = "scheduled"
	}
	return &domain.PickupConfirmation{Status: status, Date: pickupDate}, nil
}

// TrackByShipmentID returns the normalized payload, or nil when the provider
// has no tracking data yet. Failures are logged and reported as "no data":
// tracking is a read path and callers fall back to the AWB lookup.
func (a *ShiprocketAdapter) TrackByShipmentID(ctx context.Context, shipmentID int64) (*domain.TrackingPayload, error) {
	return a.track(ctx, "/courier/track/shipment/"+strconv.FormatInt(shipmentID, 10))
}

// TrackByAWB is the waybill-keyed variant of TrackByShipmentID.
func (a *ShiprocketAdapter) TrackByAWB(ctx context.Context, awbCode string) (*domain.TrackingPayload, error) {
	return a.track(ctx, "/courier/track/awb/"+url.PathEscape(awbCode))
}

func (a *ShiprocketAdapter) track(ctx context.Context, path string) (*domain.TrackingPayload, error) {
	var resp srTrackResponse
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		logger.Get().Warn("Carrier tracking lookup failed", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	if !resp.ok() {
		return nil, nil
	}
	return mapTrackingData(resp.TrackingData), nil
}

// mapTrackingData normalizes the provider's tracking envelope. Returns nil
// when the provider reported no shipment yet.
func mapTrackingData(data srTrackingData) *domain.TrackingPayload {
	if len(data.ShipmentTrack) == 0 && len(data.Activities) == 0 {
		return nil
	}

	payload := &domain.TrackingPayload{
		Events: make([]domain.TrackingActivity, 0, len(data.Activities)),
	}
	if len(data.ShipmentTrack) > 0 {
		track := data.ShipmentTrack[0]
		payload.CurrentStatus = track.CurrentStatus
		payload.CourierName = track.CourierName
		payload.ETA = track.EDD
	}

	const activityLayout = "2006-01-02 15:04:05"
	for _, act := range data.Activities {
		date, err := time.Parse(activityLayout, act.Date)
		if err != nil {
			date, _ = time.Parse(time.RFC3339, act.Date)
		}
		payload.Events = append(payload.Events, domain.TrackingActivity{
			Date:     date,
			Activity: act.Activity,
			Location: act.Location,
			Status:   strings.TrimSpace(act.SRStatusLabel),
		})
	}
	return payload
}

// internal structs for mapping

// srCreateOrderRequest is the provider's ad-hoc order creation schema.
type srCreateOrderRequest struct {
	OrderID             string        `json:"order_id"`
	OrderDate           string        `json:"order_date"`
	PickupLocation      string        `json:"pickup_location"`
	BillingCustomerName string        `json:"billing_customer_name"`
	BillingLastName     string        `json:"billing_last_name"`
	BillingAddress      string        `json:"billing_address"`
	BillingCity         string        `json:"billing_city"`
	BillingPincode      string        `json:"billing_pincode"`
	BillingState        string        `json:"billing_state"`
	BillingCountry      string        `json:"billing_country"`
	BillingEmail        string        `json:"billing_email"`
	BillingPhone        string        `json:"billing_phone"`
	ShippingIsBilling   bool          `json:"shipping_is_billing"`
	OrderItems          []srOrderItem `json:"order_items"`
	PaymentMethod       string        `json:"payment_method"`
	SubTotal            float64       `json:"sub_total"`
	Length              float64       `json:"length"`
	Breadth             float64       `json:"breadth"`
	Height              float64       `json:"height"`
	Weight              float64       `json:"weight"`
}

// srOrderItem is one product line in the provider's order schema.
type srOrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
}

type srCreateOrderResponse struct {
	srEnvelope
	Data struct {
		OrderID   int64 `json:"order_id"`
		Shipments []struct {
			ShipmentID int64 `json:"shipment_id"`
		} `json:"shipments"`
	} `json:"data"`
}

type srServiceabilityResponse struct {
	srEnvelope
	Data struct {
		AvailableCourierCompanies []srCourierCompany `json:"available_courier_companies"`
	} `json:"data"`
}

// srCourierCompany is one courier option in the serviceability response.
type srCourierCompany struct {
	CourierCompanyID      int64   `json:"courier_company_id"`
	CourierName           string  `json:"courier_name"`
	Rate                  float64 `json:"rate"`
	EstimatedDeliveryDays string  `json:"estimated_delivery_days"`
}

type srAWBData struct {
	AWBCode          string `json:"awb_code"`
	CourierCompanyID int64  `json:"courier_company_id"`
	CourierName      string `json:"courier_name"`
}

type srAssignAWBResponse struct {
	srEnvelope
	Response struct {
		Data srAWBData `json:"data"`
	} `json:"response"`
	Data srAWBData `json:"data"`
}

type srLabelResponse struct {
	srEnvelope
	Data struct {
		LabelURL string `json:"label_url"`
	} `json:"data"`
	LabelURL string `json:"label_url"`
}

type srPickupRequest struct {
	ShipmentID []int64 `json:"shipment_id"`
	PickupDate string  `json:"pickup_date"`
}

type srPickupResponse struct {
	srEnvelope
	Data struct {
		PickupStatus string `json:"pickup_status"`
	} `json:"data"`
}

type srTrackResponse struct {
	srEnvelope
	TrackingData srTrackingData `json:"tracking_data"`
}

// srTrackingData is the provider's tracking envelope.
type srTrackingData struct {
	TrackStatus   int `json:"track_status"`
	ShipmentTrack []struct {
		CurrentStatus string `json:"current_status"`
		CourierName   string `json:"courier_name"`
		EDD           string `json:"edd"`
	} `json:"shipment_track"`
	Activities []struct {
		Date          string `json:"date"`
		Activity      string `json:"activity"`
		Location      string `json:"location"`
		SRStatusLabel string `json:"sr-status-label"`
	} `json:"shipment_track_activities"`
}
