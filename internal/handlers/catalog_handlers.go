package handlers

import (
	"net/http"

	"taskBoard/internal/catalog"
)

func Categories(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusOK,
		toPayload("categories", catalog.Categories()),
		toPayload("statuses", catalog.Statuses()))
}
