package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/repos"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

// ErrApplicationNotFound maps to 404 on the export endpoint and 400 on
// automation job creation.
var ErrApplicationNotFound = fmt.Errorf("application not found")

// ExportService builds the flat export object the bot service consumes:
// standard application columns plus flattened custom and smart fields.
type ExportService interface {
	Export(ctx context.Context, applicationID int64) (map[string]any, error)
}

type exportService struct {
	log  *logger.Logger
	apps repos.ApplicationRepo
}

func NewExportService(log *logger.Logger, apps repos.ApplicationRepo) ExportService {
	return &exportService{
		log:  log.With("service", "ExportService"),
		apps: apps,
	}
}

func (s *exportService) Export(ctx context.Context, applicationID int64) (map[string]any, error) {
	app, err := s.apps.GetActiveByID(ctx, nil, applicationID)
	if err != nil {
		return nil, fmt.Errorf("fetch application %d: %w", applicationID, err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	export := map[string]any{
		"id":               app.ID,
		"tracking_code":    app.TrackingCode,
		"full_name":        app.FullName,
		"id_number":        app.IDNumber,
		"date_of_birth":    dateOrNil(app.DateOfBirth),
		"phone":            app.Phone,
		"email":            app.Email,
		"passport_no":      app.PassportNo,
		"passport_expiry":  dateOrNil(app.PassportExpiry),
		"visa_status":      app.VisaStatus,
		"visa_type":        app.VisaType,
		"country":          app.Country,
		"appointment_date": dateOrNil(app.AppointmentDate),
		"appointment_time": app.AppointmentTime,
		"pickup_date":      dateOrNil(app.PickupDate),
		"travel_date":      dateOrNil(app.TravelDate),
		"consulate_app_no": app.ConsulateAppNo,
		"consulate_office": app.ConsulateOffice,
		"source":           app.Source,
		"consulate_fee":    app.ConsulateFee,
		"service_fee":      app.ServiceFee,
		"currency":         app.Currency,
		"created_at":       app.CreatedAt,
		"updated_at":       app.UpdatedAt,
	}

	flattenCustomFields(app, export)
	return export, nil
}

// flattenCustomFields merges custom fields into the export. Smart fields
// live under the "_smart" key as {field: {sub: value}} and are flattened to
// "field_sub" entries; other underscore-prefixed keys are internal and
// skipped.
func flattenCustomFields(app *types.Application, export map[string]any) {
	if len(app.CustomFields) == 0 {
		return
	}
	var cf map[string]any
	if err := json.Unmarshal(app.CustomFields, &cf); err != nil {
		return
	}
	for k, v := range cf {
		if k == "_smart" {
			smart, ok := v.(map[string]any)
			if !ok {
				continue
			}
			for sfKey, sfData := range smart {
				subFields, ok := sfData.(map[string]any)
				if !ok {
					continue
				}
				for subKey, subVal := range subFields {
					if subKey == "_valid" {
						continue
					}
					export[sfKey+"_"+subKey] = subVal
				}
			}
		} else if !strings.HasPrefix(k, "_") {
			export[k] = v
		}
	}
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
