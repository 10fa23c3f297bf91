package models

type DeleteDevicesRequest struct {
	IDs []string `json:"ids"`
}

type DeleteDevicesData struct {
	Type string `json:"@type"`
}
