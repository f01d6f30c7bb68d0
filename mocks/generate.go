package mocks

//go:generate mockgen -destination=./mock_gateway.go -package=mocks patternbot/internal/gateway MarketDataGateway,ExecutionGateway
//go:generate mockgen -destination=./mock_registry.go -package=mocks patternbot/internal/strategy Registry,Detector
