package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/julianstephens/punchcal/internal/models"
)

const (
	ActionGetLoginURL         = "getLoginUrl"
	ActionGetProfile          = "getProfile"
	ActionCheckSession        = "checkSession"
	ActionGetAttendanceDetail = "getAttendanceDetails"
	ActionPunch               = "punch"
	ActionAdjustPunch         = "adjustPunch"
	ActionGetReviewRequest    = "getReviewRequest"
	ActionApproveReview       = "approveReview"
	ActionRejectReview        = "rejectReview"
	ActionGetEmployeeList     = "getEmployeeList"
	ActionGetLocations        = "getLocations"
	ActionAddLocation         = "addLocation"
)

type messageResponse struct {
	Msg string `json:"msg"`
}

// LoginURL returns the URL the user must visit to authenticate.
func (c *Client) LoginURL(ctx context.Context, production bool) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	params := url.Values{"isProduction": {strconv.FormatBool(production)}}
	if err := c.Call(ctx, ActionGetLoginURL, params, &res); err != nil {
		return "", err
	}
	if res.URL == "" {
		return "", &ApplicationError{Action: ActionGetLoginURL, Code: "ERR_NO_LOGIN_URL"}
	}
	return res.URL, nil
}

// ExchangeCode trades the one-time code from the login redirect for a session token.
func (c *Client) ExchangeCode(ctx context.Context, otoken string) (string, error) {
	var res struct {
		SToken string `json:"sToken"`
	}
	if err := c.Call(ctx, ActionGetProfile, url.Values{"otoken": {otoken}}, &res); err != nil {
		return "", err
	}
	if res.SToken == "" {
		return "", &ApplicationError{Action: ActionGetProfile, Code: "ERROR_LOGIN_FAILED"}
	}
	return res.SToken, nil
}

// CheckSession validates the current token and returns its user.
func (c *Client) CheckSession(ctx context.Context) (models.User, error) {
	var res struct {
		User models.User `json:"user"`
	}
	if err := c.Call(ctx, ActionCheckSession, nil, &res); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

// AttendanceDetails returns every record of monthKey (YYYY-MM) for userID.
func (c *Client) AttendanceDetails(ctx context.Context, monthKey, userID string) ([]models.AttendanceRecord, error) {
	var res struct {
		Records []models.AttendanceRecord `json:"records"`
	}
	params := url.Values{"month": {monthKey}, "userId": {userID}}
	if err := c.Call(ctx, ActionGetAttendanceDetail, params, &res); err != nil {
		return nil, err
	}
	if res.Records == nil {
		res.Records = []models.AttendanceRecord{}
	}
	return res.Records, nil
}

// FetchMonth adapts AttendanceDetails to the calendar loader contract.
func (c *Client) FetchMonth(ctx context.Context, userID, monthKey string) ([]models.AttendanceRecord, error) {
	return c.AttendanceDetails(ctx, monthKey, userID)
}

func (c *Client) Punch(ctx context.Context, req models.PunchRequest) (string, error) {
	params := url.Values{"type": {req.Type.Legacy()}, "note": {req.Note}}
	if req.Lat != nil && req.Lng != nil {
		params.Set("lat", formatCoord(*req.Lat))
		params.Set("lng", formatCoord(*req.Lng))
	}
	var res messageResponse
	if err := c.Call(ctx, ActionPunch, params, &res); err != nil {
		return "", err
	}
	return res.Msg, nil
}

func (c *Client) SubmitAdjustment(ctx context.Context, req models.AdjustmentRequest) (string, error) {
	params := url.Values{
		"date": {req.Date},
		"time": {req.Time},
		"type": {req.Type.Legacy()},
		"note": {req.Note},
	}
	var res messageResponse
	if err := c.Call(ctx, ActionAdjustPunch, params, &res); err != nil {
		return "", err
	}
	return res.Msg, nil
}

func (c *Client) ReviewRequests(ctx context.Context) ([]models.ReviewRequest, error) {
	var res struct {
		ReviewRequest []models.ReviewRequest `json:"reviewRequest"`
	}
	if err := c.Call(ctx, ActionGetReviewRequest, nil, &res); err != nil {
		return nil, err
	}
	return res.ReviewRequest, nil
}

func (c *Client) ApproveRequest(ctx context.Context, id string) (string, error) {
	return c.review(ctx, ActionApproveReview, id)
}

func (c *Client) RejectRequest(ctx context.Context, id string) (string, error) {
	return c.review(ctx, ActionRejectReview, id)
}

func (c *Client) review(ctx context.Context, action, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%s: request id is required", action)
	}
	var res messageResponse
	if err := c.Call(ctx, action, url.Values{"id": {id}}, &res); err != nil {
		return "", err
	}
	return res.Msg, nil
}

func (c *Client) Employees(ctx context.Context) ([]models.User, error) {
	var res struct {
		EmployeesList []models.User `json:"employeesList"`
	}
	if err := c.Call(ctx, ActionGetEmployeeList, nil, &res); err != nil {
		return nil, err
	}
	return res.EmployeesList, nil
}

func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var res struct {
		Locations []models.Location `json:"locations"`
	}
	if err := c.Call(ctx, ActionGetLocations, nil, &res); err != nil {
		return nil, err
	}
	return res.Locations, nil
}

func (c *Client) AddLocation(ctx context.Context, loc models.Location) (string, error) {
	params := url.Values{
		"name":   {loc.Name},
		"lat":    {formatCoord(loc.Lat)},
		"lng":    {formatCoord(loc.Lng)},
		"radius": {strconv.Itoa(loc.Radius)},
	}
	var res messageResponse
	if err := c.Call(ctx, ActionAddLocation, params, &res); err != nil {
		return "", err
	}
	return res.Msg, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
