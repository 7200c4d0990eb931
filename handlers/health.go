package handlers

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

func GetHealth(w http.ResponseWriter, r *http.Request) Result {
	return Ok(healthResponse{Status: "ok"})
}
