package impl_screening

import (
	"context"
	"fmt"
	"strings"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	port_compliance "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/compliance"
)

type Verdicts struct {
	KYC port_compliance.KYCStatus
	AML port_compliance.AMLStatus
}

// Directory is an in-memory screener keyed by sender id. Users without an
// entry get the defaults. It is built once and read concurrently.
type Directory struct {
	defaults Verdicts
	users    map[string]Verdicts
}

func NewDirectory(defaults Verdicts, users map[string]Verdicts) *Directory {
	m := make(map[string]Verdicts, len(users))
	for id, v := range users {
		m[id] = v
	}
	return &Directory{defaults: defaults, users: m}
}

// ParseVerdicts reads a single "KYC:AML" pair such as "verified:clear".
func ParseVerdicts(raw string) (Verdicts, error) {
	kyc, aml, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Verdicts{}, fmt.Errorf("screening: %q is not KYC:AML", raw)
	}
	v := Verdicts{KYC: port_compliance.KYCStatus(kyc), AML: port_compliance.AMLStatus(aml)}
	if !validKYC(v.KYC) || !validAML(v.AML) {
		return Verdicts{}, fmt.Errorf("screening: %q has unknown verdicts", raw)
	}
	return v, nil
}

// ParseOverrides reads "user-1=verified:clear,user-2=pending:under_review".
func ParseOverrides(raw string) (map[string]Verdicts, error) {
	out := make(map[string]Verdicts)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		user, verdicts, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("screening: override %q is not USER=KYC:AML", item)
		}
		v, err := ParseVerdicts(verdicts)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(user)] = v
	}
	return out, nil
}

func (d *Directory) KYCStatus(ctx context.Context, senderID string) (port_compliance.KYCStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.lookup(senderID).KYC, nil
}

func (d *Directory) ScreenAML(ctx context.Context, req domain_transfer.TransferRequest) (port_compliance.AMLStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.lookup(req.SenderID()).AML, nil
}

func (d *Directory) lookup(id string) Verdicts {
	if v, ok := d.users[id]; ok {
		return v
	}
	return d.defaults
}

func validKYC(s port_compliance.KYCStatus) bool {
	switch s {
	case port_compliance.KYCVerified, port_compliance.KYCPending, port_compliance.KYCRejected, port_compliance.KYCUnverified:
		return true
	}
	return false
}

func validAML(s port_compliance.AMLStatus) bool {
	switch s {
	case port_compliance.AMLClear, port_compliance.AMLFlagged, port_compliance.AMLUnderReview:
		return true
	}
	return false
}
