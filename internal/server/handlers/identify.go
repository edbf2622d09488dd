package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/verdantlabs/plantid/internal/server/response"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/logging"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// IdentifyRequest is the body of POST /identify.
type IdentifyRequest struct {
	Image string `json:"image"`
}

// HandleIdentify handles POST /identify.
//
//	200 {scientific_name, description, common_names}
//	400 {"error":"No image provided"}
//	404 {"error":"No plant identified"}
//	413 {"error":"Image too large"}
//	500 {"error":"Identification failed. Please try again."}
func (h *Handlers) HandleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w, http.MethodPost)
		return
	}

	logger := logging.FromContext(r.Context())

	var req IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			logger.Warn().Int64("limit", tooLarge.Limit).Msg("Request body too large")
			response.TooLarge(w)
			return
		}
		// Malformed or empty bodies carry no image.
		logger.Debug().Err(err).Msg("Could not decode identify request")
		response.ErrorFromType(w, errors.WrapValidation("image", err))
		return
	}

	result, err := h.identifier.Identify(r.Context(), plants.ImagePayload(req.Image))
	if err != nil {
		switch err.(type) {
		case *errors.ValidationError:
			logger.Debug().Err(err).Msg("Rejected identify request")
		case *errors.NotFoundError:
			logger.Info().Msg("No plant identified")
		default:
			logger.Error().Err(err).Msg("Identification failed")
		}
		response.ErrorFromType(w, err)
		return
	}

	logger.Info().
		Str("scientific_name", result.ScientificName).
		Str("common_name", result.PrimaryName()).
		Msg("Plant identified")
	response.OK(w, result)
}
