package gateway

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"

	"patternbot/internal/types"
	"patternbot/pkg/errors"
)

// BinanceSpotData implements MarketDataGateway against the Binance spot API.
type BinanceSpotData struct {
	client *binance.Client
}

// NewBinanceSpotData creates a spot market data gateway. Public kline and
// price endpoints work with empty credentials.
func NewBinanceSpotData(apiKey, secretKey string) *BinanceSpotData {
	return &BinanceSpotData{
		client: binance.NewClient(apiKey, secretKey),
	}
}

// GetCandles implements MarketDataGateway.
func (b *BinanceSpotData) GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "failed to fetch spot klines for %s", symbol)
	}

	candles := make([]types.Candle, 0, len(klines))
	for _, k := range klines {
		candles = append(candles, parseKline(k.OpenTime, k.Open, k.High, k.Low, k.Close, k.Volume))
	}

	return candles, nil
}

// GetCurrentPrice implements MarketDataGateway.
func (b *BinanceSpotData) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "failed to fetch spot price for %s", symbol)
	}

	if len(prices) == 0 {
		return 0, errors.Newf(errors.ErrCodeDataNotFound, "no spot price returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "unparsable spot price %q for %s", prices[0].Price, symbol)
	}

	return price, nil
}

// BinanceFuturesData implements MarketDataGateway against the Binance USD-M
// perpetual futures API.
type BinanceFuturesData struct {
	client *futures.Client
}

// NewBinanceFuturesData creates a futures market data gateway.
func NewBinanceFuturesData(apiKey, secretKey string) *BinanceFuturesData {
	return &BinanceFuturesData{
		client: binance.NewFuturesClient(apiKey, secretKey),
	}
}

// GetCandles implements MarketDataGateway.
func (b *BinanceFuturesData) GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "failed to fetch futures klines for %s", symbol)
	}

	candles := make([]types.Candle, 0, len(klines))
	for _, k := range klines {
		candles = append(candles, parseKline(k.OpenTime, k.Open, k.High, k.Low, k.Close, k.Volume))
	}

	return candles, nil
}

// GetCurrentPrice implements MarketDataGateway.
func (b *BinanceFuturesData) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "failed to fetch futures price for %s", symbol)
	}

	if len(prices) == 0 {
		return 0, errors.Newf(errors.ErrCodeDataNotFound, "no futures price returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeGatewayFailure, err, "unparsable futures price %q for %s", prices[0].Price, symbol)
	}

	return price, nil
}

// parseKline converts a Binance kline's string fields into a Candle, using
// the bar's open time as its timestamp.
func parseKline(openTime int64, open, high, low, closePrice, volume string) types.Candle {
	o, _ := strconv.ParseFloat(open, 64)
	h, _ := strconv.ParseFloat(high, 64)
	l, _ := strconv.ParseFloat(low, 64)
	c, _ := strconv.ParseFloat(closePrice, 64)
	v, _ := strconv.ParseFloat(volume, 64)

	return types.Candle{
		Time:   time.UnixMilli(openTime),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: v,
	}
}
