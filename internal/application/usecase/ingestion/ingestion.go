// Package ingestion implements the document ingestion pipeline: parsing,
// merchant normalization, deduplication, batch categorization, and atomic
// persistence of the resulting transactions (spec §4.D).
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/categorization"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// MaxFileSizeBytes is the upload size gate (spec §4.D step 2: 10 MiB).
const MaxFileSizeBytes = 10 * 1024 * 1024

var mimeToKind = map[string]entity.FileType{
	"text/csv":        entity.FileTypeCSV,
	"application/csv": entity.FileTypeCSV,
	"application/pdf": entity.FileTypePDF,
	"image/jpeg":      entity.FileTypeImage,
	"image/png":       entity.FileTypeImage,
	"image/heic":      entity.FileTypeImage,
}

// Input is one document submission.
type Input struct {
	OwnerID   string
	AccountID uuid.UUID
	Filename  string
	Content   []byte
	MimeType  string
}

// Result is the outcome of one ingestion run (spec §4.D).
type Result struct {
	ImportID uuid.UUID
	Created  int
	Skipped  int
	Errors   []string
}

// UseCase runs the ingestion pipeline end to end.
type UseCase struct {
	accountRepo     adapter.AccountRepository
	importRepo      adapter.ImportRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	llm             adapter.LLMProvider
	orchestrator    *categorization.Orchestrator
}

// NewUseCase creates a new ingestion UseCase instance.
func NewUseCase(
	accountRepo adapter.AccountRepository,
	importRepo adapter.ImportRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	llm adapter.LLMProvider,
	orchestrator *categorization.Orchestrator,
) *UseCase {
	return &UseCase{
		accountRepo:     accountRepo,
		importRepo:      importRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		llm:             llm,
		orchestrator:    orchestrator,
	}
}

// Run executes the full ingestion pipeline for one submitted document.
func (uc *UseCase) Run(ctx context.Context, input Input) (*Result, error) {
	if _, err := uc.accountRepo.FindByID(ctx, input.OwnerID, input.AccountID); err != nil {
		return nil, domainerror.NewAccountError(domainerror.KindNotFound, domainerror.ErrCodeAccountNotFound, "account not found", domainerror.ErrAccountNotFound)
	}

	if len(input.Content) == 0 {
		return nil, domainerror.NewImportError(domainerror.KindValidation, domainerror.ErrCodeEmptyFile, "uploaded file is empty", domainerror.ErrEmptyFile)
	}
	if len(input.Content) > MaxFileSizeBytes {
		return nil, domainerror.NewImportError(domainerror.KindValidation, domainerror.ErrCodeFileTooLarge, "file exceeds the maximum upload size", domainerror.ErrFileTooLarge)
	}
	kind, ok := mimeToKind[input.MimeType]
	if !ok {
		return nil, domainerror.NewImportError(domainerror.KindValidation, domainerror.ErrCodeUnsupportedContentType, "unsupported content type", domainerror.ErrUnsupportedContentType)
	}

	imp := entity.NewImport(input.OwnerID, input.AccountID, input.Filename, kind)
	if err := uc.importRepo.Create(ctx, imp); err != nil {
		return nil, err
	}
	imp.MarkProcessing()
	if err := uc.importRepo.Update(ctx, imp); err != nil {
		return nil, err
	}

	parsed, err := uc.parse(ctx, input.Content, kind, input.MimeType)
	if err != nil {
		imp.MarkFailed(err.Error())
		_ = uc.importRepo.Update(ctx, imp)
		return nil, domainerror.NewImportError(domainerror.KindParseFailure, domainerror.ErrCodeParseFailure, "failed to parse uploaded file", domainerror.ErrParseFailure)
	}
	if len(parsed) == 0 {
		reason := "no transactions found in uploaded file"
		imp.MarkFailed(reason)
		_ = uc.importRepo.Update(ctx, imp)
		return nil, domainerror.NewImportError(domainerror.KindParseFailure, domainerror.ErrCodeParseFailure, reason, domainerror.ErrParseFailure)
	}

	result := &Result{ImportID: imp.ID}
	candidates := make([]*entity.Transaction, 0, len(parsed))

	for _, p := range parsed {
		postedAt, err := time.Parse("2006-01-02", p.PostedAt)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("unparsable posted date %q", p.PostedAt))
			continue
		}

		merchantNormalized := normalizeMerchant(ctx, p.MerchantRaw, uc.llm)
		txKey := computeTxKey(input.AccountID, postedAt, p.Amount, p.Description)

		if existing, err := uc.transactionRepo.FindByTxKey(ctx, input.OwnerID, txKey); err == nil && existing != nil {
			result.Skipped++
			continue
		}

		tx := entity.NewTransaction(input.OwnerID, input.AccountID, &imp.ID, postedAt, p.Amount, p.Description, p.MerchantRaw, merchantNormalized, txKey)
		candidates = append(candidates, tx)
	}

	if len(candidates) > 0 {
		uc.categorizeAndPersist(ctx, input.OwnerID, candidates, result)
	}

	imp.MarkCompleted(result.Created)
	if err := uc.importRepo.Update(ctx, imp); err != nil {
		slog.Warn("ingestion: failed to mark import completed", "importId", imp.ID, "error", err)
	}
	result.ImportID = imp.ID

	return result, nil
}

func (uc *UseCase) parse(ctx context.Context, content []byte, kind entity.FileType, mimeType string) ([]adapter.ParsedTransaction, error) {
	if kind == entity.FileTypeCSV {
		if rows := parseCSV(content); len(rows) > 0 {
			return rows, nil
		}
		if uc.llm == nil {
			return nil, nil
		}
		parseResult, err := uc.llm.ParseDocument(ctx, content, adapter.DocumentKindCSV, mimeType)
		if err != nil {
			return nil, err
		}
		return parseResult.Transactions, nil
	}

	if uc.llm == nil {
		return nil, nil
	}

	docKind := adapter.DocumentKindPDF
	if kind == entity.FileTypeImage {
		docKind = adapter.DocumentKindImage
	}
	parseResult, err := uc.llm.ParseDocument(ctx, content, docKind, mimeType)
	if err != nil {
		return nil, err
	}
	return parseResult.Transactions, nil
}

func (uc *UseCase) categorizeAndPersist(ctx context.Context, ownerID string, candidates []*entity.Transaction, result *Result) {
	rules, err := uc.orchestrator.LoadRules(ctx, ownerID)
	if err != nil {
		slog.Warn("ingestion: failed to load rules, proceeding without rule matches", "ownerId", ownerID, "error", err)
	}

	categories, err := uc.categoryRepo.ListForOwner(ctx, ownerID)
	if err != nil {
		slog.Warn("ingestion: failed to load categories for LLM fallback", "ownerId", ownerID, "error", err)
	}
	llmCategories := make([]adapter.LLMCategory, len(categories))
	for i, c := range categories {
		llmCategories[i] = adapter.LLMCategory{ID: c.ID, Name: c.Name}
	}

	decisions := uc.orchestrator.CategorizeBatch(ctx, candidates, rules, llmCategories)
	for _, tx := range candidates {
		decision := decisions[tx.ID]
		tx.CategoryID = decision.CategoryID
		tx.Explainability = decision.Explainability
		tx.Tags = decision.AddTags

		if err := uc.transactionRepo.Create(ctx, tx); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to persist transaction %s: %v", tx.TxKey, err))
			continue
		}
		if decision.MatchedRuleID != nil {
			uc.orchestrator.RecordRuleMatch(ctx, *decision.MatchedRuleID)
		}
		result.Created++
	}
}

// computeTxKey derives the dedup key for a parsed row: sha256 of
// accountId|YYYY-MM-DD(postedAt)|amount|description (spec §4.D step 6).
func computeTxKey(accountID uuid.UUID, postedAt time.Time, amount int64, description string) string {
	payload := fmt.Sprintf("%s|%s|%d|%s", accountID, postedAt.Format("2006-01-02"), amount, description)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
