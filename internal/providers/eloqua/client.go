package eloqua

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/ratelimit"
)

const bulkPath = "/api/bulk/2.0"

// Config holds the bulk API client settings
type Config struct {
	BaseURL         string
	Company         string
	User            string
	Password        string
	SyncLimit       int
	PageSize        int
	PollInterval    time.Duration
	PollTimeout     time.Duration
	ImportChunkSize int
}

// Client speaks the bulk API: definitions, syncs and data pages
//
//go:generate mockgen -source=client.go -destination=../../mocks/eloqua_client.go -package=mocks -mock_names=Client=MockEloquaClient
type Client interface {
	// Export creates the export definition, syncs it, reads every data page and deletes the definition
	Export(ctx context.Context, entity string, def ExportDefinition) ([]domain.Record, error)

	// Import creates the import definition, uploads records in chunks, syncs unless the
	// definition syncs on upload, and deletes the definition
	Import(ctx context.Context, entity string, def ImportDefinition, records []domain.Record) error
}

type client struct {
	cfg     Config
	http    adapter.HTTPClient
	limiter ratelimit.Limiter
	header  http.Header
}

// NewClient creates a bulk API client. A nil limiter sends requests unpaced.
func NewClient(cfg Config, httpClient adapter.HTTPClient, limiter ratelimit.Limiter) Client {
	if cfg.SyncLimit <= 0 {
		cfg.SyncLimit = 50000
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 50000 {
		cfg.PageSize = 1000
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Minute
	}
	if cfg.ImportChunkSize <= 0 {
		cfg.ImportChunkSize = 5000
	}

	header := http.Header{}
	header.Set("Authorization", "Basic "+credentials(cfg.Company, cfg.User, cfg.Password))

	return &client{
		cfg:     cfg,
		http:    httpClient,
		limiter: limiter,
		header:  header,
	}
}

// credentials encodes Company\User:Password. An empty company leaves the user as given.
func credentials(company, user, password string) string {
	login := user
	if company != "" {
		login = company + `\` + user
	}
	return base64.StdEncoding.EncodeToString([]byte(login + ":" + password))
}

func (c *client) url(uri string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + bulkPath + uri
}

func (c *client) get(ctx context.Context, uri string, result any) error {
	_, err := ratelimit.Do(ctx, c.limiter, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.http.Get(ctx, c.url(uri), c.header, result)
	})
	return err
}

func (c *client) post(ctx context.Context, uri string, body any, result any) error {
	_, err := ratelimit.Do(ctx, c.limiter, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.http.Send(ctx, http.MethodPost, c.url(uri), c.header, body, result)
	})
	return err
}

func (c *client) delete(ctx context.Context, uri string) {
	_, err := ratelimit.Do(ctx, c.limiter, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.http.Delete(ctx, c.url(uri), c.header)
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to delete bulk definition", zap.String("uri", uri), zap.Error(err))
	}
}

func (c *client) Export(ctx context.Context, entity string, def ExportDefinition) ([]domain.Record, error) {
	if def.MaxRecords <= 0 {
		def.MaxRecords = c.cfg.SyncLimit
	}

	var created definitionResponse
	if err := c.post(ctx, "/"+entity+"/exports", def, &created); err != nil {
		return nil, fmt.Errorf("failed to create export %s: %w", def.Name, err)
	}
	if created.URI == "" {
		return nil, fmt.Errorf("export %s: definition has no uri", def.Name)
	}
	defer c.delete(context.WithoutCancel(ctx), created.URI)

	syncURI, err := c.sync(ctx, created.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to sync export %s: %w", def.Name, err)
	}

	records, err := c.readAll(ctx, syncURI+"/data")
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", def.Name, err)
	}

	logger.DebugCtx(ctx, "Export complete",
		zap.String("name", def.Name),
		zap.String("entity", entity),
		zap.Int("records", len(records)))

	return records, nil
}

func (c *client) Import(ctx context.Context, entity string, def ImportDefinition, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	var created definitionResponse
	if err := c.post(ctx, "/"+entity+"/imports", def, &created); err != nil {
		return fmt.Errorf("failed to create import %s: %w", def.Name, err)
	}
	if created.URI == "" {
		return fmt.Errorf("import %s: definition has no uri", def.Name)
	}
	defer c.delete(context.WithoutCancel(ctx), created.URI)

	for start := 0; start < len(records); start += c.cfg.ImportChunkSize {
		end := min(start+c.cfg.ImportChunkSize, len(records))
		if err := c.post(ctx, created.URI+"/data", records[start:end], nil); err != nil {
			return fmt.Errorf("failed to upload import %s rows %d-%d: %w", def.Name, start, end, err)
		}
	}

	if !def.IsSyncTriggeredOnImport {
		if _, err := c.sync(ctx, created.URI); err != nil {
			return fmt.Errorf("failed to sync import %s: %w", def.Name, err)
		}
	}

	logger.DebugCtx(ctx, "Import complete",
		zap.String("name", def.Name),
		zap.String("entity", entity),
		zap.Int("records", len(records)))

	return nil
}

// sync starts a sync of the definition and waits for it to finish
func (c *client) sync(ctx context.Context, instanceURI string) (string, error) {
	var started syncResponse
	if err := c.post(ctx, "/syncs", syncRequest{SyncedInstanceURI: instanceURI}, &started); err != nil {
		return "", err
	}
	if started.URI == "" {
		return "", errors.New("sync has no uri")
	}
	return started.URI, c.waitForSync(ctx, started.URI)
}

func (c *client) waitForSync(ctx context.Context, syncURI string) error {
	pollCtx, cancel := context.WithTimeout(ctx, c.cfg.PollTimeout)
	defer cancel()

	operation := func() error {
		var status syncResponse
		if err := c.get(pollCtx, syncURI, &status); err != nil {
			return backoff.Permanent(err)
		}

		switch status.Status {
		case syncSuccess:
			return nil
		case syncWarning:
			logger.WarnCtx(ctx, "Sync finished with warnings",
				zap.String("sync", syncURI),
				zap.String("logs", c.logs(ctx, syncURI)))
			return nil
		case syncError:
			return backoff.Permanent(fmt.Errorf("sync %s failed: %s", syncURI, c.logs(ctx, syncURI)))
		default:
			return fmt.Errorf("sync %s is %s", syncURI, status.Status)
		}
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(c.cfg.PollInterval), pollCtx))
}

// logs summarizes the sync log entries for error messages
func (c *client) logs(ctx context.Context, syncURI string) string {
	var logs syncLogs
	if err := c.get(ctx, syncURI+"/logs", &logs); err != nil {
		return fmt.Sprintf("logs unavailable: %v", err)
	}

	msgs := make([]string, 0, len(logs.Items))
	for _, l := range logs.Items {
		msgs = append(msgs, fmt.Sprintf("[%s %s] %s (%d)", l.Severity, l.StatusCode, l.Message, l.Count))
	}
	return strings.Join(msgs, "; ")
}

// readAll pages through a data endpoint until hasMore is false
func (c *client) readAll(ctx context.Context, dataURI string) ([]domain.Record, error) {
	var records []domain.Record
	offset := 0

	for {
		q := url.Values{}
		q.Set("offset", fmt.Sprint(offset))
		q.Set("limit", fmt.Sprint(c.cfg.PageSize))

		var page dataPage
		if err := c.get(ctx, dataURI+"?"+q.Encode(), &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			records = append(records, domain.Record(item))
		}

		if !page.HasMore || len(page.Items) == 0 {
			break
		}
		offset += len(page.Items)
	}

	return records, nil
}
