package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/faturado/billing-engine/internal/domain"
	"github.com/faturado/billing-engine/internal/logger"
	apperrors "github.com/faturado/billing-engine/pkg/errors"
)

// noInvoiceDataMessage is returned instead of calling the model when there is
// nothing to analyze.
const noInvoiceDataMessage = "Nenhum dado de fatura disponível para gerar um relatório."

// completionClient is the slice of the OpenAI client the report service uses.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ReportService produces the revenue projection narrative. The model is an
// opaque external collaborator: it receives invoice tuples and returns free
// text, and any failure surfaces as a generic external-service error.
type ReportService struct {
	billing *BillingService
	ai      completionClient
	model   string
	log     zerolog.Logger
}

func NewReportService(billing *BillingService, client *openai.Client, model string) *ReportService {
	return &ReportService{
		billing: billing,
		ai:      client,
		model:   model,
		log:     logger.WithComponent("report"),
	}
}

// RevenueProjection builds the invoice tuple list and asks the model for a
// narrative summary.
func (s *ReportService) RevenueProjection(ctx context.Context) (string, error) {
	invoices, err := s.billing.ListInvoices(ctx)
	if err != nil {
		return "", err
	}

	if len(invoices) == 0 {
		return noInvoiceDataMessage, nil
	}

	entries := make([]domain.RevenueEntry, 0, len(invoices))
	for _, inv := range invoices {
		entries = append(entries, domain.RevenueEntry{
			InvoiceID:   inv.InvoiceID,
			ClientID:    inv.ClientID,
			Amount:      inv.Amount,
			DueDate:     inv.DueDate,
			PaymentDate: inv.PaymentDate,
		})
	}

	prompt := buildRevenuePrompt(entries)

	s.log.Info().Int("invoices", len(entries)).Str("model", s.model).Msg("requesting revenue projection")

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("revenue projection failed")
		return "", apperrors.WrapExternalService("report generation", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.WrapExternalService("report generation", fmt.Errorf("empty completion"))
	}

	return resp.Choices[0].Message.Content, nil
}

func buildRevenuePrompt(entries []domain.RevenueEntry) string {
	var b strings.Builder
	b.WriteString("Você é um analista financeiro encarregado de gerar um relatório de projeção de receita com base em uma lista de faturas.\n\n")
	b.WriteString("Analise as seguintes faturas e determine o status de cada pagamento (concluído, pendente, atrasado ou baixado como prejuízo).\n")
	b.WriteString("Forneça um resumo das projeções de receita, incluindo pontos de dados e insights importantes.\n\n")
	b.WriteString("Faturas:\n")
	for _, e := range entries {
		payment := "null"
		if e.PaymentDate != nil {
			payment = e.PaymentDate.String()
		}
		fmt.Fprintf(&b, "- ID da Fatura: %s, ID do Cliente: %s, Valor: %s, Data de Vencimento: %s, Data de Pagamento: %s\n",
			e.InvoiceID, e.ClientID, e.Amount.StringFixed(2), e.DueDate, payment)
	}
	return b.String()
}
