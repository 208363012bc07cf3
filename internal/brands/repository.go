package brands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/prompts"
	"brandforge/internal/samples"
	"brandforge/internal/workflow"
	"brandforge/pkg/pagination"
	"brandforge/pkg/query"
	"brandforge/pkg/repository"
	"brandforge/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const brandColumns = `id, sample_id, tone, signature_phrases, strengths,
		  weaknesses, tagline, bio, palette, heading_font, body_font,
		  logo_prompt, markdown_key, kit_key, generated_at,
		  model_name, provider_name`

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a brand repository implementing the System interface.
// It internally constructs the workflow runtime from the provided
// dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	storage storage.System,
	smp samples.System,
	ps prompts.System,
	runs *workflow.Registry,
	format string,
	resetDelay time.Duration,
) System {
	rt := &workflow.Runtime{
		Agent:      agent,
		Storage:    storage,
		Samples:    smp,
		Prompts:    ps,
		Runs:       runs,
		Logger:     logger.With("workflow", "generate"),
		Format:     format,
		ResetDelay: resetDelay,
	}
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "brands"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Brand], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Tone", "Tagline", "Bio")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count brands: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBrand)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Brand, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBrand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) FindBySample(ctx context.Context, sampleID uuid.UUID) (*Brand, error) {
	q, args := query.NewBuilder(projection).BuildSingle("SampleID", sampleID)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBrand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

// Generate runs the brand-generation workflow for a sample and persists
// the result. The sample is marked generating for the duration of the
// run; a failed run returns it to uploaded, a successful run upserts the
// brand row and marks the sample branded in one transaction. Assets are
// uploaded by the workflow before anything is written to the database.
func (r *repo) Generate(ctx context.Context, sampleID uuid.UUID) (*Brand, error) {
	if err := r.setSampleStatus(ctx, sampleID, samples.StatusGenerating); err != nil {
		return nil, fmt.Errorf("%w: %w", workflow.ErrSampleNotFound, err)
	}

	result, err := workflow.Execute(ctx, r.rt, sampleID)
	if err != nil {
		// the run may have failed because ctx itself was cancelled; the
		// revert still has to reach the database or the sample stays
		// generating forever
		revertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if revertErr := r.setSampleStatus(revertCtx, sampleID, samples.StatusUploaded); revertErr != nil {
			r.logger.Error("revert sample status failed",
				"sample_id", sampleID,
				"error", revertErr,
			)
		}
		return nil, fmt.Errorf("generate brand for sample %s: %w", sampleID, err)
	}

	upsertArgs, err := buildUpsertArgs(r.rt, sampleID, result)
	if err != nil {
		return nil, err
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO brands(
			sample_id, tone, signature_phrases, strengths, weaknesses,
			tagline, bio, palette, heading_font, body_font, logo_prompt,
			markdown_key, kit_key, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (sample_id) DO UPDATE SET
			tone = EXCLUDED.tone,
			signature_phrases = EXCLUDED.signature_phrases,
			strengths = EXCLUDED.strengths,
			weaknesses = EXCLUDED.weaknesses,
			tagline = EXCLUDED.tagline,
			bio = EXCLUDED.bio,
			palette = EXCLUDED.palette,
			heading_font = EXCLUDED.heading_font,
			body_font = EXCLUDED.body_font,
			logo_prompt = EXCLUDED.logo_prompt,
			markdown_key = EXCLUDED.markdown_key,
			kit_key = EXCLUDED.kit_key,
			generated_at = NOW(),
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name
		RETURNING %s`, brandColumns)

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Brand, error) {
		br, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanBrand)
		if err != nil {
			return Brand{}, fmt.Errorf("upsert brand: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE samples SET status = $1, updated_at = NOW() WHERE id = $2",
			samples.StatusBranded, sampleID,
		); err != nil {
			return Brand{}, fmt.Errorf("update sample status: %w", err)
		}

		return br, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand generated",
		"id", b.ID,
		"sample_id", sampleID,
		"run_id", result.RunID,
		"tone", b.Tone,
	)
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM brands WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand deleted", "id", id)
	return nil
}

func (r *repo) setSampleStatus(ctx context.Context, sampleID uuid.UUID, status string) error {
	return repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE samples SET status = $1, updated_at = NOW() WHERE id = $2",
		status, sampleID,
	)
}

func buildUpsertArgs(rt *workflow.Runtime, sampleID uuid.UUID, result *workflow.Result) ([]any, error) {
	phrasesJSON, err := json.Marshal(emptyIfNil(result.Style.SignaturePhrases))
	if err != nil {
		return nil, fmt.Errorf("marshal signature_phrases: %w", err)
	}

	strengthsJSON, err := json.Marshal(emptyIfNil(result.Style.Strengths))
	if err != nil {
		return nil, fmt.Errorf("marshal strengths: %w", err)
	}

	weaknessesJSON, err := json.Marshal(emptyIfNil(result.Style.Weaknesses))
	if err != nil {
		return nil, fmt.Errorf("marshal weaknesses: %w", err)
	}

	paletteJSON, err := json.Marshal(emptyIfNil(result.Visual.Palette))
	if err != nil {
		return nil, fmt.Errorf("marshal palette: %w", err)
	}

	return []any{
		sampleID,
		result.Style.Tone,
		phrasesJSON,
		strengthsJSON,
		weaknessesJSON,
		result.Style.Tagline,
		result.Style.Bio,
		paletteJSON,
		result.Visual.Fonts.Heading,
		result.Visual.Fonts.Body,
		result.Visual.LogoPrompt,
		result.MarkdownKey,
		result.KitKey,
		rt.Agent.Model.Name,
		rt.Agent.Provider.Name,
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
