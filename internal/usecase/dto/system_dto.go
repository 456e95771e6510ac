package dto

import "time"

type DeviceInfo struct {
	Platform  string `json:"platform,omitempty"`
	Model     string `json:"model,omitempty"`
	OSVersion string `json:"osVersion,omitempty"`
}

type NFCReadRequest struct {
	NFCID      string      `json:"nfcId" validate:"required,min=1"`
	TagType    string      `json:"tagType,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
	DeviceInfo *DeviceInfo `json:"deviceInfo,omitempty"`
}

type NFCReadQuery struct {
	ID        string `query:"id" validate:"required,min=1"`
	TagType   string `query:"tagType"`
	Timestamp string `query:"timestamp"`
}

type NFCReadResponse struct {
	NFCID      string    `json:"nfcId"`
	TagType    string    `json:"tagType,omitempty"`
	Timestamp  string    `json:"timestamp"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type ComponentStatus struct {
	Connected bool `json:"connected"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Uptime    float64         `json:"uptime"`
	Hostname  string          `json:"hostname"`
	Timestamp time.Time       `json:"timestamp"`
	Database  ComponentStatus `json:"database"`
	Redis     ComponentStatus `json:"redis"`
	TraceID   string          `json:"traceId,omitempty"`
}
