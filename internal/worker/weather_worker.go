package worker

import (
	"context"
	"log"
	"time"

	"marsdash/internal/service"
)

type WeatherWorker struct {
	*tickerWorker
	service service.WeatherService
}

func NewWeatherWorker(service service.WeatherService, interval time.Duration) *WeatherWorker {
	w := &WeatherWorker{service: service}
	w.tickerWorker = newTickerWorker("weather", interval, w.generate)
	return w
}

func (w *WeatherWorker) generate(ctx context.Context) error {
	reports, err := w.service.GenerateLatest(ctx)
	if err != nil {
		return err
	}
	for _, r := range reports {
		log.Printf("Weather %s sol %d: %.1f..%.1f°C, %.0f Pa", r.Rover, r.Sol, r.MinTemp, r.MaxTemp, r.Pressure)
	}
	return nil
}
