package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meterportal/internal/configxml"
	"meterportal/internal/logging"
	"meterportal/internal/model"
	"meterportal/internal/storage"
	"meterportal/internal/warehouse"
)

const (
	configPrefix = "config/"
	codesPrefix  = "config/meter_provider_auth_codes"

	// DataFileLayout names standardized data files and upload batches.
	DataFileLayout = "2006-01-02T15:04:05"

	maxStdFiles       = 12
	monthlyDelayHours = 32
	defaultDelayHours = 2
	noDataHours       = 10000
	seriesWindow      = 72 * time.Hour
)

var meterFilePattern = regexp.MustCompile(`^config/meter_.*\.xml$`)

var errMissingName = errors.New("Error: missing participant name in participant.xml; validate it against XML Schema")

// ParticipantService fills participant stubs with meters, pushes, properties and codes.
type ParticipantService interface {
	// Model never fails as a whole: a failing fetch is recorded as status and
	// validation message on the node it belongs to.
	Model(ctx context.Context, p *model.Participant)
}

// ParticipantOptions tune participant modelling.
type ParticipantOptions struct {
	DashboardURL string
	Concurrency  int
	Now          func() time.Time
	Metrics      *ModelMetrics
}

type participantService struct {
	store        storage.Storage
	wh           warehouse.Warehouse
	catalog      warehouse.Catalog
	log          *zap.Logger
	tracer       trace.Tracer
	dashboardURL string
	limit        int
	now          func() time.Time
	metrics      *ModelMetrics
}

// NewParticipantService constructs a new ParticipantService.
func NewParticipantService(store storage.Storage, wh warehouse.Warehouse, catalog warehouse.Catalog, log *zap.Logger, opts ParticipantOptions) ParticipantService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &participantService{
		store:        store,
		wh:           wh,
		catalog:      catalog,
		log:          logging.Component(log, "participant"),
		tracer:       otel.Tracer("meterportal/internal/service"),
		dashboardURL: opts.DashboardURL,
		limit:        opts.Concurrency,
		now:          opts.Now,
		metrics:      opts.Metrics,
	}
}

func (s *participantService) Model(ctx context.Context, p *model.Participant) {
	ctx, span := s.tracer.Start(ctx, "participant.model", trace.WithAttributes(
		attribute.String("participant.bucket", p.Bucket),
		attribute.String("participant.env", p.Env),
	))
	defer span.End()

	log := s.log.With(zap.String("bucket", p.Bucket))
	log.Info("participant_model_start")
	start := time.Now()
	now := s.now().UTC().Truncate(time.Hour)

	defer func() {
		if p.Status == model.StatusError {
			span.SetStatus(codes.Error, strings.Join(p.Validation, "; "))
		}
		s.metrics.observeParticipant(p.Env, p.Status)
		log.Info("participant_model_done",
			zap.String("status", p.Status),
			zap.Int("meters", len(p.Meters)),
			zap.Int("pushes", len(p.Pushes)),
			zap.Int("properties", len(p.Properties)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}()

	configFiles, err := s.store.List(ctx, p.Bucket, storage.ListOptions{Prefix: configPrefix, EndOffset: "~"})
	if err != nil {
		log.Error("participant_config_list_failed", zap.Error(err))
		p.Fail("Error: " + err.Error())
		return
	}

	p.Codes = s.modelCodes(ctx, log, p.Bucket)
	p.Meters = s.modelMeters(ctx, log, p.Bucket, configFiles, now)

	for _, obj := range configFiles {
		if obj.Key == model.ParticipantConfigFile {
			s.modelParticipantFile(ctx, log, p, now)
			break
		}
	}
}

func (s *participantService) modelCodes(ctx context.Context, log *zap.Logger, bucket string) []model.Code {
	objs, err := s.store.List(ctx, bucket, storage.ListOptions{Prefix: codesPrefix, EndOffset: "~"})
	if err != nil {
		log.Error("codes_list_failed", zap.Error(err))
		return []model.Code{}
	}

	keys := make([]string, 0, len(objs))
	for _, o := range objs {
		if !strings.HasSuffix(o.Key, "/") {
			keys = append(keys, o.Key)
		}
	}

	results := make([]*model.Code, len(keys))
	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, key := range keys {
		g.Go(func() error {
			content, err := storage.ReadText(ctx, s.store, bucket, key)
			if err != nil {
				log.Error("code_fetch_failed", zap.String("file", key), zap.Error(err))
				return nil
			}
			results[i] = &model.Code{Name: key, BaseName: configxml.Basename(key), Content: content}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.Code, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func (s *participantService) modelMeters(ctx context.Context, log *zap.Logger, bucket string, configFiles []storage.ObjectInfo, now time.Time) []model.Meter {
	meters := make([]model.Meter, 0)
	for _, obj := range configFiles {
		if !meterFilePattern.MatchString(obj.Key) {
			continue
		}
		meters = append(meters, model.Meter{
			Idx:        fmt.Sprintf("%s-meter-%d", bucket, len(meters)),
			Bucket:     bucket,
			FileName:   obj.Key,
			StdFiles:   []model.DataFile{},
			Validation: []string{},
			Haystack:   []string{},
		})
	}

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i := range meters {
		g.Go(func() error {
			s.modelMeter(ctx, log, &meters[i], now)
			return nil
		})
	}
	_ = g.Wait()
	return meters
}

func (s *participantService) modelMeter(ctx context.Context, log *zap.Logger, m *model.Meter, now time.Time) {
	if err := s.fillMeter(ctx, m, now); err != nil {
		log.Error("meter_model_failed", zap.String("file", m.FileName), zap.Error(err))
		m.Validation = append(m.Validation, "Error: "+err.Error())
		m.Status = model.StatusError
		if m.Type == "" {
			m.Type = "undefined"
		}
	}
	s.metrics.observeMeter(m.Status)
}

func (s *participantService) fillMeter(ctx context.Context, m *model.Meter, now time.Time) error {
	raw, err := storage.ReadText(ctx, s.store, m.Bucket, m.FileName)
	if err != nil {
		return err
	}
	doc, err := configxml.ParseString(raw)
	if err != nil {
		return err
	}

	md := configxml.Meter(doc)
	m.URI = md.URI
	m.ShortURI = configxml.Basename(md.URI)
	m.Type = md.Type
	m.IconType = IconFor(md.Type)
	m.UpdateFrequency = md.UpdateFrequency

	files, err := s.stdFiles(ctx, md.MeteredDataLocation, now)
	if err != nil {
		return err
	}
	m.StdFiles = files
	applyFreshness(m, md.MeteredDataLocation, now)

	if expected := m.Bucket + "/" + m.FileName; m.URI != expected {
		m.Validation = append(m.Validation, fmt.Sprintf(
			"URI (%s) is not the same as meter def. XML file name, expected (%s).", m.URI, expected))
		m.Status = model.StatusError
	}

	m.Haystack = md.Haystack
	return nil
}

// stdFiles lists the standardized files of the month around now, newest first.
func (s *participantService) stdFiles(ctx context.Context, loc configxml.Location, now time.Time) ([]model.DataFile, error) {
	objs, err := s.store.List(ctx, loc.Bucket, storage.ListOptions{
		Prefix:      loc.Path,
		StartOffset: loc.Path + "/" + now.AddDate(0, -1, 0).Format(DataFileLayout),
		EndOffset:   loc.Path + "/" + now.AddDate(0, 1, 0).Format(DataFileLayout),
	})
	if err != nil {
		return nil, err
	}

	files := make([]model.DataFile, 0, len(objs))
	for _, o := range objs {
		base := configxml.Basename(o.Key)
		if _, ok := ParseDataFileTime(base); !ok {
			continue
		}
		bucket := o.Bucket
		if bucket == "" {
			bucket = loc.Bucket
		}
		files = append(files, model.DataFile{BaseName: base, Name: o.Key, Bucket: bucket})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].BaseName > files[j].BaseName })
	if len(files) > maxStdFiles {
		files = files[:maxStdFiles]
	}
	return files, nil
}

func applyFreshness(m *model.Meter, loc configxml.Location, now time.Time) {
	if len(m.StdFiles) == 0 {
		m.Status = model.StatusDanger
		m.Validation = append(m.Validation, "No valid data file name found in "+loc.Bucket+"/"+loc.Path)
		m.LastUpdateHours = noDataHours
		m.LastUpdateHoursHumanized = "A long time"
		return
	}

	last, _ := ParseDataFileTime(m.StdFiles[0].BaseName)
	m.LastStdUpdate = &last
	m.Duration = now.Sub(last)
	m.LastUpdateHours = int(m.Duration.Hours())
	m.LastUpdateHoursHumanized = humanize.RelTime(last, now, "ago", "from now")

	allowed := defaultDelayHours
	if m.UpdateFrequency == "Monthly" {
		allowed = monthlyDelayHours
	}

	m.Status = model.StatusSuccess
	switch {
	case m.LastUpdateHours > allowed:
		m.Status = model.StatusWarning
		m.Validation = append(m.Validation, "Stale data")
	case last.After(now):
		m.Status = model.StatusDanger
		m.Validation = append(m.Validation, "Future data")
	}
}

// ParseDataFileTime strictly parses a standardized file base name as a UTC time.
func ParseDataFileTime(name string) (time.Time, bool) {
	t, err := time.Parse(DataFileLayout, name)
	if err != nil || t.Format(DataFileLayout) != name {
		return time.Time{}, false
	}
	return t, true
}

func (s *participantService) modelParticipantFile(ctx context.Context, log *zap.Logger, p *model.Participant, now time.Time) {
	fail := func(err error) {
		log.Error("participant_file_failed", zap.Error(err))
		p.Fail("Error in push/pull config in participant.xml: " + err.Error())
	}

	raw, err := storage.ReadText(ctx, s.store, p.Bucket, model.ParticipantConfigFile)
	if err != nil {
		fail(err)
		return
	}
	doc, err := configxml.ParseString(raw)
	if err != nil {
		fail(err)
		return
	}

	pd := configxml.Participant(doc)
	p.Name = strings.TrimSpace(pd.Name)
	if p.Name == "" {
		fail(errMissingName)
		return
	}

	pushes, pushErrs := s.modelPushes(ctx, log, p.Bucket, pd.Pushes)
	p.Pushes = pushes
	for _, err := range pushErrs {
		fail(err)
	}

	properties, propErrs := s.modelProperties(ctx, log, p.Env, pd.PropertyURIs, now)
	p.Properties = properties
	for _, msg := range propErrs {
		p.Fail("Error while processing properties: " + msg)
	}
}

func (s *participantService) modelPushes(ctx context.Context, log *zap.Logger, bucket string, connectors []configxml.PushConnector) ([]model.Push, []error) {
	pushes := make([]model.Push, len(connectors))
	errs := make([]error, len(connectors))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, pc := range connectors {
		g.Go(func() error {
			pushes[i], errs[i] = s.modelPush(ctx, log, fmt.Sprintf("%s%d", bucket, i), pc)
			return nil
		})
	}
	_ = g.Wait()

	failed := make([]error, 0)
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return pushes, failed
}

func (s *participantService) modelPush(ctx context.Context, log *zap.Logger, idx string, pc configxml.PushConnector) (model.Push, error) {
	raw := pc.RawDataLocation
	push := model.Push{
		Idx:           idx,
		MeterURIs:     []model.MeterRef{},
		Timezone:      strings.TrimSpace(pc.Timezone),
		ConnectorName: strings.TrimSpace(pc.Function),
		Description:   pc.Description,
		Bucket:        raw.Bucket,
		FileName:      raw.Path + "/raw-data",
		Uploads:       []string{},
		Validation:    []string{},
	}

	objs, err := s.store.List(ctx, raw.Bucket, storage.ListOptions{
		Prefix:      raw.Path + "/raw-data-",
		StartOffset: raw.Path + "/ ",
		EndOffset:   raw.Path + "/~",
	})
	if err != nil {
		push.Validation = append(push.Validation, err.Error())
		return push, err
	}
	for _, o := range objs {
		push.Uploads = append(push.Uploads, strings.TrimPrefix(o.Key, raw.Path+"/"))
	}

	refs := make([]*model.MeterRef, len(pc.MeterURIs))
	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, uri := range pc.MeterURIs {
		key := strings.Replace(uri, raw.Bucket+"/", "", 1)
		g.Go(func() error {
			text, err := storage.ReadText(ctx, s.store, raw.Bucket, key)
			if err != nil {
				log.Error("push_meter_fetch_failed", zap.String("meter_uri", uri), zap.Error(err))
				return nil
			}
			doc, err := configxml.ParseString(text)
			if err != nil {
				log.Error("push_meter_parse_failed", zap.String("meter_uri", uri), zap.Error(err))
				return nil
			}
			meterType := configxml.MeterType(doc)
			refs[i] = &model.MeterRef{MeterURI: configxml.Basename(key), Type: meterType, IconType: IconFor(meterType)}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range refs {
		if r != nil {
			push.MeterURIs = append(push.MeterURIs, *r)
		}
	}
	return push, nil
}

func (s *participantService) modelProperties(ctx context.Context, log *zap.Logger, env string, uris []string, now time.Time) ([]model.Property, []string) {
	properties := make([]model.Property, len(uris))
	msgs := make([]string, len(uris))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, uri := range uris {
		g.Go(func() error {
			properties[i], msgs[i] = s.modelProperty(ctx, log, env, i, uri, now)
			return nil
		})
	}
	_ = g.Wait()

	failed := make([]string, 0)
	for _, msg := range msgs {
		if msg != "" {
			failed = append(failed, msg)
		}
	}
	return properties, failed
}

// modelProperty returns the property and, when its XML could not be read, the failure message.
func (s *participantService) modelProperty(ctx context.Context, log *zap.Logger, env string, idx int, uri string, now time.Time) (model.Property, string) {
	bucket, name, ok := strings.Cut(uri, "/")
	if !ok {
		bucket, name = "", uri
	}

	prop := model.Property{
		Idx:           fmt.Sprintf("%s_%d", bucket, idx),
		URI:           uri,
		Status:        model.StatusSuccess,
		Validation:    []string{},
		Bucket:        bucket,
		FileName:      name,
		DashboardLink: s.dashboardLink(bucket + "/" + name),
		Haystack:      []string{},
		Weights:       []model.Weight{},
		Series:        emptySeries(),
	}

	raw, err := storage.ReadText(ctx, s.store, bucket, name)
	var doc *configxml.Node
	if err == nil {
		doc, err = configxml.ParseString(raw)
	}
	if err != nil {
		msg := fmt.Sprintf("Error fetching property %s: %v", uri, err)
		log.Error("property_fetch_failed", zap.String("property_uri", uri), zap.Error(err))
		prop.Status = model.StatusError
		prop.Validation = append(prop.Validation, msg)
		return prop, msg
	}

	pd := configxml.Property(doc)
	prop.Name = pd.Name
	prop.Address = pd.Address
	prop.GrossFloorArea = pd.GrossFloorArea
	prop.Haystack = pd.Haystack

	rows := warehouse.QueryOrEmpty(ctx, s.wh, s.log, env, s.catalog.Weights(uri))
	if len(rows) == 0 {
		prop.Status = model.StatusWarning
		prop.Validation = append(prop.Validation, "No meter weights defined in BigQuery DW")
	}
	for _, r := range rows {
		w, _ := r.Float("weight")
		meterType := r.String("type")
		prop.Weights = append(prop.Weights, model.Weight{
			Type:        meterType,
			IconType:    IconFor(meterType),
			PropertyURI: r.String("property_uri"),
			MeterURI:    configxml.Basename(r.String("meter_uri")),
			Weight:      w,
		})
	}

	prop.Series = s.series(ctx, env, uri, now)
	return prop, ""
}

func (s *participantService) dashboardLink(propertyURI string) string {
	params, _ := json.Marshal(map[string]string{
		"ds0.property_uri":   propertyURI,
		"ds181.property_uri": propertyURI,
		"ds182.property_uri": propertyURI,
	})
	return s.dashboardURL + "?params=" + strings.ReplaceAll(url.QueryEscape(string(params)), "+", "%20")
}

// series reads every chart series of a property over the window ending at now.
// Rows without a timestamp or numeric value are dropped.
func (s *participantService) series(ctx context.Context, env, uri string, now time.Time) map[string][]model.Point {
	end := now
	start := end.Add(-seriesWindow)
	results := make([][]model.Point, len(warehouse.ChartQueries))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, cq := range warehouse.ChartQueries {
		g.Go(func() error {
			rows := warehouse.QueryOrEmpty(ctx, s.wh, s.log, env, s.catalog.Series(cq, uri, start, end))
			points := make([]model.Point, 0, len(rows))
			for _, r := range rows {
				ts, ok := r.Time("timestamp")
				if !ok {
					continue
				}
				v, ok := r.Float(cq.Column)
				if !ok {
					continue
				}
				points = append(points, model.Point{float64(ts.UnixMilli()), v})
			}
			results[i] = points
			return nil
		})
	}
	_ = g.Wait()

	series := emptySeries()
	for i, cq := range warehouse.ChartQueries {
		series[cq.Type] = results[i]
	}
	return series
}

func emptySeries() map[string][]model.Point {
	series := make(map[string][]model.Point, len(warehouse.ChartQueries))
	for _, cq := range warehouse.ChartQueries {
		series[cq.Type] = []model.Point{}
	}
	return series
}
