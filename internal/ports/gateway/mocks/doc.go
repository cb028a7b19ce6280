// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate mockgen -destination=mock_persistence.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence TransferResultRepository
//go:generate mockgen -destination=mock_messaging.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/messaging Publisher
//go:generate mockgen -destination=mock_platform.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform Clock,IDGenerator
//go:generate mockgen -destination=mock_scheme.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme Client
//go:generate mockgen -destination=mock_fx.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx RateProvider
//go:generate mockgen -destination=mock_compliance.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/compliance Screener
//go:generate mockgen -destination=mock_service.go -package=mocks github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/service ComplianceGate,RateResolver,FeeCalculator
