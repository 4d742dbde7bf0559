package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evyataryagoni/ipdata/internal/ipstack"
	"github.com/evyataryagoni/ipdata/internal/logger"
	"github.com/evyataryagoni/ipdata/internal/metrics"
	"github.com/evyataryagoni/ipdata/internal/models"
	"github.com/evyataryagoni/ipdata/internal/store"
	"github.com/go-playground/validator/v10"
)

// Validation errors surfaced before any storage access.
var (
	ErrInvalidIP  = errors.New("invalid IP address format")
	ErrValidation = errors.New("invalid request body")
)

// IPDataService holds the business logic for ipdata records: creation via
// provider lookup or manual entry, reads, and reference-counted deletes.
// HTTP concerns live in the handler layer; persistence in the store.
type IPDataService struct {
	store     store.Store
	client    ipstack.Client
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewIPDataService creates the service. Metrics and logger may be nil.
func NewIPDataService(st store.Store, client ipstack.Client, m *metrics.Metrics, log *logger.Logger) *IPDataService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &IPDataService{
		store:     st,
		client:    client,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("IPDataService"),
	}
}

// CreateFromLookup resolves an IP through the ipstack provider and persists
// the result. Fails with store.ErrIPExists when the address is already known;
// provider failures propagate as *ipstack.APIError with storage untouched.
func (s *IPDataService) CreateFromLookup(ctx context.Context, ip string) (*models.IPDataResponse, error) {
	if err := s.validator.Var(ip, "required,ip"); err != nil {
		s.logger.Warn().Str("ip", ip).Msg("Invalid IP address format")
		return nil, ErrInvalidIP
	}

	if err := s.ensureIPAbsent(ctx, ip); err != nil {
		s.countOp("create", "conflict")
		return nil, err
	}

	data, err := s.client.GetIPData(ctx, ip)
	if err != nil {
		s.logger.Warn().Err(err).Str("ip", ip).Msg("Provider lookup failed")
		s.countProvider("error")
		s.countOp("create", "provider_error")
		return nil, err
	}
	s.countProvider("success")

	rec, loc := recordFromGeoIPData(data)
	return s.persist(ctx, "create", rec, loc)
}

// CreateManual persists a record supplied in full by the caller, bypassing
// the provider.
func (s *IPDataService) CreateManual(ctx context.Context, req *models.ManualCreateRequest) (*models.IPDataResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn().Err(err).Msg("Invalid manual create request")
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.ensureIPAbsent(ctx, req.IP); err != nil {
		s.countOp("create_manual", "conflict")
		return nil, err
	}

	rec, loc := recordFromManual(req)
	return s.persist(ctx, "create_manual", rec, loc)
}

// Get fetches a record by address and renders the combined view.
func (s *IPDataService) Get(ctx context.Context, ip string) (*models.IPDataResponse, error) {
	if err := s.validator.Var(ip, "required,ip"); err != nil {
		return nil, ErrInvalidIP
	}

	rec, err := s.store.FindIPDataByIP(ctx, ip)
	if err != nil {
		if errors.Is(err, store.ErrIPNotFound) {
			s.logger.Debug().Str("ip", ip).Msg("IP address not found")
			s.countOp("get", "not_found")
		} else {
			s.logger.Error().Err(err).Str("ip", ip).Msg("Store error during lookup")
			s.countOp("get", "error")
		}
		return nil, err
	}

	loc, err := s.store.GetLocationByID(ctx, rec.LocationID)
	if err != nil {
		s.logger.Error().Err(err).Str("ip", ip).Str("location_id", rec.LocationID).Msg("Failed to load location")
		s.countOp("get", "error")
		return nil, err
	}

	s.countOp("get", "success")
	return render(rec, loc), nil
}

// Delete removes a record by address. The backing location row is removed in
// the same transaction when no other record references it.
func (s *IPDataService) Delete(ctx context.Context, ip string) error {
	if err := s.validator.Var(ip, "required,ip"); err != nil {
		return ErrInvalidIP
	}

	if err := s.store.DeleteIPData(ctx, ip); err != nil {
		if errors.Is(err, store.ErrIPNotFound) {
			s.countOp("delete", "not_found")
		} else {
			s.logger.Error().Err(err).Str("ip", ip).Msg("Store error during delete")
			s.countOp("delete", "error")
		}
		return err
	}

	s.logger.Info().Str("ip", ip).Msg("IP data deleted")
	s.countOp("delete", "success")
	return nil
}

// Close cleans up the underlying store.
func (s *IPDataService) Close() error {
	return s.store.Close()
}

// ensureIPAbsent rejects creates for addresses already present.
func (s *IPDataService) ensureIPAbsent(ctx context.Context, ip string) error {
	_, err := s.store.FindIPDataByIP(ctx, ip)
	if err == nil {
		s.logger.Debug().Str("ip", ip).Msg("IP address already exists")
		return store.ErrIPExists
	}
	if !errors.Is(err, store.ErrIPNotFound) {
		return err
	}
	return nil
}

// persist writes the record and its location as one unit of work and renders
// the result.
func (s *IPDataService) persist(ctx context.Context, op string, rec *models.IPDataModel, loc *models.LocationModel) (*models.IPDataResponse, error) {
	res, err := s.store.CreateIPData(ctx, rec, loc)
	if err != nil {
		s.logger.Error().Err(err).Str("ip", rec.IP).Msg("Failed to persist IP data")
		s.countOp(op, "error")
		return nil, err
	}

	if s.metrics != nil {
		result := "reused"
		if res.LocationCreated {
			result = "created"
		}
		s.metrics.LocationResolvedTotal.WithLabelValues(result).Inc()
	}

	s.logger.Info().
		Str("ip", res.IPData.IP).
		Int("geoname_id", res.Location.GeonameID).
		Bool("location_created", res.LocationCreated).
		Msg("IP data created")
	s.countOp(op, "success")

	return render(res.IPData, res.Location), nil
}

func (s *IPDataService) countOp(operation, result string) {
	if s.metrics != nil {
		s.metrics.IPDataOpsTotal.WithLabelValues(operation, result).Inc()
	}
}

func (s *IPDataService) countProvider(outcome string) {
	if s.metrics != nil {
		s.metrics.ProviderRequestsTotal.WithLabelValues(outcome).Inc()
	}
}

// recordFromGeoIPData maps a provider payload onto the storage models.
// Structured language entries collapse to their codes, order preserved.
func recordFromGeoIPData(d *models.GeoIPData) (*models.IPDataModel, *models.LocationModel) {
	codes := make([]string, 0, len(d.Location.Languages))
	for _, lang := range d.Location.Languages {
		codes = append(codes, lang.Code)
	}

	rec := &models.IPDataModel{
		IP:             d.IP,
		Type:           d.Type,
		ContinentCode:  d.ContinentCode,
		ContinentName:  d.ContinentName,
		CountryCode:    d.CountryCode,
		CountryName:    d.CountryName,
		RegionCode:     d.RegionCode,
		RegionName:     d.RegionName,
		City:           d.City,
		Zip:            d.Zip,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		MSA:            d.MSA,
		DMA:            d.DMA,
		Radius:         d.Radius,
		IPRoutingType:  d.IPRoutingType,
		ConnectionType: d.ConnectionType,
	}
	loc := &models.LocationModel{
		GeonameID:               d.Location.GeonameID,
		Capital:                 d.Location.Capital,
		CountryFlag:             d.Location.CountryFlag,
		CountryFlagEmoji:        d.Location.CountryFlagEmoji,
		CountryFlagEmojiUnicode: d.Location.CountryFlagEmojiUnicode,
		CallingCode:             d.Location.CallingCode,
		IsEU:                    d.Location.IsEU,
		Languages:               strings.Join(codes, models.LanguagesSeparator),
	}
	return rec, loc
}

// recordFromManual maps a manual-create body onto the storage models.
// The flat language-code list joins directly.
func recordFromManual(req *models.ManualCreateRequest) (*models.IPDataModel, *models.LocationModel) {
	rec := &models.IPDataModel{
		IP:             req.IP,
		Type:           req.Type,
		ContinentCode:  req.ContinentCode,
		ContinentName:  req.ContinentName,
		CountryCode:    req.CountryCode,
		CountryName:    req.CountryName,
		RegionCode:     req.RegionCode,
		RegionName:     req.RegionName,
		City:           req.City,
		Zip:            req.Zip,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		MSA:            req.MSA,
		DMA:            req.DMA,
		Radius:         req.Radius,
		IPRoutingType:  req.IPRoutingType,
		ConnectionType: req.ConnectionType,
	}
	loc := &models.LocationModel{
		GeonameID:               req.Location.GeonameID,
		Capital:                 req.Location.Capital,
		CountryFlag:             req.Location.CountryFlag,
		CountryFlagEmoji:        req.Location.CountryFlagEmoji,
		CountryFlagEmojiUnicode: req.Location.CountryFlagEmojiUnicode,
		CallingCode:             req.Location.CallingCode,
		IsEU:                    req.Location.IsEU,
		Languages:               strings.Join(req.Location.Languages, models.LanguagesSeparator),
	}
	return rec, loc
}

// render joins one ipdata row with its location row into the combined view.
// Every scalar is copied verbatim; only languages are re-expanded.
func render(rec *models.IPDataModel, loc *models.LocationModel) *models.IPDataResponse {
	return &models.IPDataResponse{
		IP:             rec.IP,
		Type:           rec.Type,
		ContinentCode:  rec.ContinentCode,
		ContinentName:  rec.ContinentName,
		CountryCode:    rec.CountryCode,
		CountryName:    rec.CountryName,
		RegionCode:     rec.RegionCode,
		RegionName:     rec.RegionName,
		City:           rec.City,
		Zip:            rec.Zip,
		Latitude:       rec.Latitude,
		Longitude:      rec.Longitude,
		MSA:            rec.MSA,
		DMA:            rec.DMA,
		Radius:         rec.Radius,
		IPRoutingType:  rec.IPRoutingType,
		ConnectionType: rec.ConnectionType,
		Location: models.LocationSchema{
			GeonameID:               loc.GeonameID,
			Capital:                 loc.Capital,
			Languages:               loc.LanguageCodes(),
			CountryFlag:             loc.CountryFlag,
			CountryFlagEmoji:        loc.CountryFlagEmoji,
			CountryFlagEmojiUnicode: loc.CountryFlagEmojiUnicode,
			CallingCode:             loc.CallingCode,
			IsEU:                    loc.IsEU,
		},
	}
}
