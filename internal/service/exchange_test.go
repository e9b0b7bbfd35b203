package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jdscolam/mndp-firebase-auth/internal/audit"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/correlation"
	"github.com/jdscolam/mndp-firebase-auth/internal/directory"
	"github.com/jdscolam/mndp-firebase-auth/internal/metrics"
	"github.com/jdscolam/mndp-firebase-auth/internal/roles"
	"github.com/jdscolam/mndp-firebase-auth/internal/signers"
)

type fakeValidator struct {
	identities map[string]string
	err        error
	calls      int
}

func (v *fakeValidator) Name() string { return "fake" }

func (v *fakeValidator) Validate(_ context.Context, credential string) (core.Identity, error) {
	v.calls++
	if v.err != nil {
		return core.Identity{}, v.err
	}
	username, ok := v.identities[credential]
	if !ok {
		return core.Identity{}, core.ValidationFailed(401, "Invalid token.")
	}
	return core.Identity{Username: username}, nil
}

type countingResolver struct {
	next  core.RoleResolver
	err   error
	calls int
}

func (r *countingResolver) Resolve(ctx context.Context, identity core.Identity, group string) (core.EnrichedIdentity, error) {
	r.calls++
	if r.err != nil {
		return core.EnrichedIdentity{}, r.err
	}
	return r.next.Resolve(ctx, identity, group)
}

type countingDirectory struct {
	core.Directory
	calls int
}

func (d *countingDirectory) Members(ctx context.Context, group string) ([]core.Member, error) {
	d.calls++
	return d.Directory.Members(ctx, group)
}

type recordingSigner struct {
	subject string
	claims  map[string]bool
	err     error
	calls   int
}

func (s *recordingSigner) Name() string { return "recording" }

func (s *recordingSigner) Mint(_ context.Context, subject string, claims map[string]bool) (core.SignedToken, error) {
	s.calls++
	s.subject, s.claims = subject, claims
	if s.err != nil {
		return core.SignedToken{}, s.err
	}
	return core.SignedToken{Value: "signed." + subject}, nil
}

type pipeline struct {
	validator *fakeValidator
	directory *countingDirectory
	resolver  *countingResolver
	signer    *recordingSigner
	auditor   *audit.InMemoryAuditor
	exchanger *Exchanger
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	p := &pipeline{
		validator: &fakeValidator{identities: map[string]string{"abc123": "dj_sam", "kim": "dj_kim"}},
		directory: &countingDirectory{Directory: directory.NewStatic(map[string][]string{
			"mondaynight": {"dj_sam", "dj_alex"},
		})},
		signer:  &recordingSigner{},
		auditor: audit.NewInMemoryAuditor(0),
	}
	p.resolver = &countingResolver{next: roles.NewResolver(p.directory)}
	issuer, err := NewIssuer(p.signer, "hasRole")
	if err != nil {
		t.Fatal(err)
	}
	p.exchanger = NewExchanger(p.validator, p.resolver, issuer, p.auditor, metrics.New())
	return p
}

func TestExchange_NoGroupPassthrough(t *testing.T) {
	p := newPipeline(t)

	res, err := p.exchanger.Exchange(context.Background(), "abc123", "")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if res.Identity.Username != "dj_sam" || res.Token.Value != "signed.dj_sam" {
		t.Errorf("Exchange() = %+v", res)
	}
	if p.directory.calls != 0 {
		t.Errorf("directory called %d times, want 0", p.directory.calls)
	}
	if p.signer.claims != nil {
		t.Errorf("minted with claims %v, want none", p.signer.claims)
	}
}

func TestExchange_Roles(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		group      string
		wantClaims map[string]bool
	}{
		{name: "Role Match", credential: "abc123", group: "mondaynight", wantClaims: map[string]bool{"hasRole": true}},
		{name: "Role Mismatch", credential: "kim", group: "mondaynight", wantClaims: nil},
		{name: "Unknown Group", credential: "abc123", group: "tuesday", wantClaims: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)

			res, err := p.exchanger.Exchange(context.Background(), tt.credential, tt.group)
			if err != nil {
				t.Fatalf("Exchange() error = %v", err)
			}
			if p.directory.calls != 1 {
				t.Errorf("directory called %d times, want 1", p.directory.calls)
			}
			if p.signer.subject != res.Identity.Username {
				t.Errorf("minted for %s, want %s", p.signer.subject, res.Identity.Username)
			}
			if len(p.signer.claims) != len(tt.wantClaims) || p.signer.claims["hasRole"] != tt.wantClaims["hasRole"] {
				t.Errorf("minted with claims %v, want %v", p.signer.claims, tt.wantClaims)
			}
			if len(res.Token.Claims) != len(tt.wantClaims) {
				t.Errorf("token claims %v, want %v", res.Token.Claims, tt.wantClaims)
			}
		})
	}
}

func TestExchange_ValidatorFailure(t *testing.T) {
	p := newPipeline(t)

	_, err := p.exchanger.Exchange(context.Background(), "wrong", "mondaynight")

	var exErr *core.ExchangeError
	if !errors.As(err, &exErr) {
		t.Fatalf("Exchange() error = %v, want *core.ExchangeError", err)
	}
	if exErr.Kind != core.KindValidation || exErr.StatusCode() != 401 || exErr.Message != "Invalid token." {
		t.Errorf("Exchange() error = {%s %d %q}", exErr.Kind, exErr.StatusCode(), exErr.Message)
	}
	if p.resolver.calls != 0 || p.signer.calls != 0 {
		t.Errorf("later stages ran: resolver=%d signer=%d", p.resolver.calls, p.signer.calls)
	}
}

func TestExchange_EmptyCredential(t *testing.T) {
	p := newPipeline(t)

	_, err := p.exchanger.Exchange(context.Background(), "", "mondaynight")

	var exErr *core.ExchangeError
	if !errors.As(err, &exErr) {
		t.Fatalf("Exchange() error = %v, want *core.ExchangeError", err)
	}
	if exErr.Kind != core.KindMissingInput || exErr.StatusCode() != 403 || exErr.Message != "Forbidden!  No token sent." {
		t.Errorf("Exchange() error = {%s %d %q}", exErr.Kind, exErr.StatusCode(), exErr.Message)
	}
	if p.validator.calls != 0 {
		t.Errorf("validator called %d times, want 0", p.validator.calls)
	}
}

func TestExchange_DependencyFailures(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		p := newPipeline(t)
		p.resolver.err = core.DependencyFailed(errors.New("redis down"))

		_, err := p.exchanger.Exchange(context.Background(), "abc123", "mondaynight")
		var exErr *core.ExchangeError
		if !errors.As(err, &exErr) || exErr.Kind != core.KindDependency || exErr.StatusCode() != 500 {
			t.Fatalf("Exchange() error = %v, want dependency failure", err)
		}
		if p.signer.calls != 0 {
			t.Error("signer ran after resolver failure")
		}
	})

	t.Run("Signer", func(t *testing.T) {
		p := newPipeline(t)
		p.signer.err = errors.New("key unavailable")

		_, err := p.exchanger.Exchange(context.Background(), "abc123", "")
		var exErr *core.ExchangeError
		if !errors.As(err, &exErr) || exErr.Kind != core.KindDependency || exErr.Message != core.DefaultErrorMessage {
			t.Fatalf("Exchange() error = %v, want dependency failure", err)
		}
	})

	t.Run("Untyped Validator Error", func(t *testing.T) {
		p := newPipeline(t)
		p.validator.err = errors.New("socket closed")

		_, err := p.exchanger.Exchange(context.Background(), "abc123", "")
		var exErr *core.ExchangeError
		if !errors.As(err, &exErr) || exErr.Kind != core.KindTransport || exErr.StatusCode() != 500 {
			t.Fatalf("Exchange() error = %v, want transport failure", err)
		}
	})
}

func TestExchange_Audit(t *testing.T) {
	p := newPipeline(t)
	ctx := correlation.WithID(context.Background(), "req-1")

	if _, err := p.exchanger.Exchange(ctx, "abc123", "mondaynight"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.exchanger.Exchange(ctx, "wrong", "mondaynight"); err == nil {
		t.Fatal("Exchange() expected error")
	}

	entries, err := p.auditor.GetRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}

	ok := entries[0]
	if !ok.Success || ok.ID != "req-1" || ok.Username != "dj_sam" || !ok.HasRole ||
		ok.Stage != core.StageDone || ok.Reached != core.StageIssued {
		t.Errorf("success entry = %+v", ok)
	}
	if ok.TokenFingerprint != audit.Fingerprint("signed.dj_sam") {
		t.Errorf("fingerprint = %s", ok.TokenFingerprint)
	}

	failed := entries[1]
	if failed.Success || failed.Stage != core.StageFailed || failed.Reached != core.StageStart ||
		failed.ErrorKind != core.KindValidation || failed.ErrorCode != 401 || failed.Username != "" {
		t.Errorf("failure entry = %+v", failed)
	}
}

func TestExchange_AuditTrimmedGroup(t *testing.T) {
	tests := []struct {
		name      string
		group     string
		wantGroup string
	}{
		{name: "Padded", group: " mondaynight ", wantGroup: "mondaynight"},
		{name: "Blank", group: "   ", wantGroup: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			if _, err := p.exchanger.Exchange(context.Background(), "abc123", tt.group); err != nil {
				t.Fatal(err)
			}
			entries, err := p.auditor.GetRecent(1)
			if err != nil || len(entries) != 1 {
				t.Fatalf("GetRecent() = %v, %v", entries, err)
			}
			if entries[0].Group != tt.wantGroup {
				t.Errorf("audited group = %q, want %q", entries[0].Group, tt.wantGroup)
			}
		})
	}
}

func TestExchange_Idempotent(t *testing.T) {
	p := newPipeline(t)

	first, err := p.exchanger.Exchange(context.Background(), "abc123", "mondaynight")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.exchanger.Exchange(context.Background(), "abc123", "mondaynight")
	if err != nil {
		t.Fatal(err)
	}
	if first.Identity != second.Identity {
		t.Errorf("identities differ: %v != %v", first.Identity, second.Identity)
	}
}

func TestExchange_HMACRoundTrip(t *testing.T) {
	signer, err := signers.NewHMAC("session", signers.HMACConfig{Secret: "0123456789abcdef0123456789abcdef"})
	if err != nil {
		t.Fatal(err)
	}
	issuer, err := NewIssuer(signer, "mondaynightdanceparty")
	if err != nil {
		t.Fatal(err)
	}
	exchanger := NewExchanger(
		&fakeValidator{identities: map[string]string{"abc123": "dj_sam"}},
		roles.NewResolver(directory.NewStatic(map[string][]string{"mondaynight": {"dj_sam"}})),
		issuer,
		nil,
		nil,
	)

	res, err := exchanger.Exchange(context.Background(), "abc123", "mondaynight")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	claims, err := signer.Verify(res.Token.Value)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims["sub"] != "dj_sam" || claims["mondaynightdanceparty"] != true {
		t.Errorf("claims = %v", claims)
	}
}
