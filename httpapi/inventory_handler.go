package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManishR23/clink-chatbot/inventory"
)

//handleListInventory returns the full catalog in load order
func handleListInventory(inv *inventory.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		return &handlerResponse{Code: http.StatusOK, Body: &ListInventoryResponse{Items: inv.Records()}}
	}
}

//handleReadItem returns one catalog record by case-insensitive name
func handleReadItem(inv *inventory.Store) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		name := mux.Vars(r)["name"]

		rec := inv.FindByName(name)
		if rec == nil {
			return handleError(http.StatusNotFound, errors.New("Could not find item"))
		}

		return &handlerResponse{Code: http.StatusOK, Body: rec}
	}
}
