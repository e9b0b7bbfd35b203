package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/audit"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/correlation"
	"github.com/jdscolam/mndp-firebase-auth/internal/metrics"
)

// Exchanger runs the exchange pipeline: validate the credential, resolve the role,
// issue the token. The first failing stage aborts the exchange.
type Exchanger struct {
	validator core.CredentialValidator
	resolver  core.RoleResolver
	issuer    core.TokenIssuer
	auditor   core.Auditor
	metrics   *metrics.Metrics
}

func NewExchanger(
	validator core.CredentialValidator,
	resolver core.RoleResolver,
	issuer core.TokenIssuer,
	auditor core.Auditor,
	m *metrics.Metrics,
) *Exchanger {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Exchanger{
		validator: validator,
		resolver:  resolver,
		issuer:    issuer,
		auditor:   auditor,
		metrics:   m,
	}
}

// Exchange trades credential for a signed token, enriched with the role of group
// if group is not empty. Failures are always returned as *core.ExchangeError.
func (e *Exchanger) Exchange(ctx context.Context, credential, group string) (*core.ExchangeResult, error) {
	logger := log.Ctx(ctx)
	start := time.Now()

	reached := core.StageStart
	auditEntry := core.AuditEntry{
		ID:        correlation.ID(ctx),
		Time:      start,
		Action:    "token.exchange",
		Group:     strings.TrimSpace(group),
		Validator: e.validator.Name(),
	}

	var exErr *core.ExchangeError
	defer func() {
		auditEntry.Reached = reached
		if exErr != nil {
			auditEntry.Stage = core.StageFailed
			auditEntry.ErrorKind = exErr.Kind
			auditEntry.ErrorCode = exErr.StatusCode()
			auditEntry.Error = exErr.Message
			e.metrics.ObserveExchange(exErr.Kind, time.Since(start))
		} else {
			auditEntry.Stage = core.StageDone
			auditEntry.Success = true
			e.metrics.ObserveExchange("", time.Since(start))
		}
		if err := e.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for token exchange")
		}
	}()

	fail := func(err error, kind core.ErrorKind) (*core.ExchangeResult, error) {
		exErr = core.AsExchangeError(err, kind)
		logger.Warn().
			Str("reached", string(reached)).
			Str("kind", string(exErr.Kind)).
			Int("code", exErr.StatusCode()).
			Msg("token exchange failed")
		return nil, exErr
	}

	if credential == "" {
		return fail(core.MissingInput(), core.KindMissingInput)
	}

	// stage 1: who is the caller?
	logger.Debug().Str("credential_fp", audit.ShortFingerprint(credential)).Msg("validating credential")
	identity, err := e.validator.Validate(ctx, credential)
	if err != nil {
		return fail(err, core.KindTransport)
	}
	reached = core.StageValidated
	auditEntry.Username = identity.Username
	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user", identity.Username)
	})

	// stage 2: does the caller hold the role of the group?
	enriched, err := e.resolver.Resolve(ctx, identity, group)
	if err != nil {
		return fail(err, core.KindDependency)
	}
	reached = core.StageEnriched
	auditEntry.Group = enriched.Group
	auditEntry.HasRole = enriched.HasRole

	// stage 3: mint the token
	token, err := e.issuer.Issue(ctx, enriched)
	if err != nil {
		return fail(err, core.KindDependency)
	}
	reached = core.StageIssued
	auditEntry.TokenFingerprint = token.Fingerprint

	logger.Info().
		Str("group", enriched.Group).
		Bool("has_role", enriched.HasRole).
		Str("token_fp", token.Fingerprint).
		Msg("token exchanged")

	return &core.ExchangeResult{
		Identity: identity,
		Token:    token,
	}, nil
}
