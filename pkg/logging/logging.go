// Package logging emits one JSON object per log line so the entries can be
// shipped and queried without extra parsing.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Component string `json:"component"`
	UserID    string `json:"user_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	ProductID string `json:"product_id,omitempty"`
	Step      string `json:"step,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func Log(fields Fields) {
	payload := map[string]any{
		"component": fields.Component,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if fields.UserID != "" {
		payload["user_id"] = fields.UserID
	}
	if fields.OrderID != "" {
		payload["order_id"] = fields.OrderID
	}
	if fields.ProductID != "" {
		payload["product_id"] = fields.ProductID
	}
	if fields.Step != "" {
		payload["step"] = fields.Step
	}
	if fields.Status != "" {
		payload["status"] = fields.Status
	}
	if fields.Message != "" {
		payload["message"] = fields.Message
	}
	if fields.Error != "" {
		payload["error"] = fields.Error
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"component\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Component, err.Error())
		return
	}
	log.Print(string(data))
}
