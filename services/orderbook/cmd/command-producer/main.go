package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/command-consumer/v1"
)

// generateCommands creates count add commands resting around basePrice.
// Bids rest below basePrice and asks above it.
func generateCommands(rng *rand.Rand, count int, asset v1.Asset, basePrice, spread decimal.Decimal) []v1.OrderCommand {
	commands := make([]v1.OrderCommand, count)
	half := decimal.NewFromFloat(0.5)

	for i := range commands {
		side := "sell"
		if rng.Float64() < 0.5 {
			side = "buy"
		}

		offset := spread.Mul(decimal.NewFromFloat(rng.Float64()).Mul(half))
		price := basePrice.Add(offset)
		if side == "buy" {
			price = basePrice.Sub(offset)
		}
		price = price.Round(1)
		if !price.IsPositive() {
			price = basePrice
		}

		// between 0.001 and 10
		amount := decimal.NewFromFloat(0.001 + rng.Float64()*9.999).Round(3)
		if !amount.IsPositive() {
			amount = decimal.New(1, -3)
		}

		commands[i] = v1.OrderCommand{
			Type:           v1.CommandAddOrder,
			IdempotencyKey: uuid.NewString(),
			Asset:          asset,
			Price:          price.String(),
			Amount:         amount.String(),
			Side:           side,
		}
	}

	return commands
}

func main() {
	var (
		brokers   = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic     = flag.String("topic", "orderbook-commands", "Kafka topic name")
		file      = flag.String("file", "", "JSON file with commands (optional, generates add commands if not provided)")
		delay     = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count     = flag.Int("count", 1000, "Number of commands to generate")
		class     = flag.String("class", "coin_pair", "Asset class of generated commands")
		symbol    = flag.String("symbol", "BTCUSD", "Asset symbol of generated commands")
		basePrice = flag.String("base-price", "30000", "Base price for generated orders")
		spread    = flag.String("price-spread", "2000", "Price spread range")
	)
	flag.Parse()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var commands []v1.OrderCommand
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read file %s: %v", *file, err)
		}
		if err := json.Unmarshal(data, &commands); err != nil {
			log.Fatalf("Failed to parse JSON from file: %v", err)
		}
		log.Printf("Loaded %d commands from file: %s", len(commands), *file)
	} else {
		base, err := decimal.NewFromString(*basePrice)
		if err != nil {
			log.Fatalf("Invalid base price %q: %v", *basePrice, err)
		}
		width, err := decimal.NewFromString(*spread)
		if err != nil {
			log.Fatalf("Invalid price spread %q: %v", *spread, err)
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		commands = generateCommands(rng, *count, v1.Asset{Class: *class, Symbol: *symbol}, base, width)
		log.Printf("Generated %d add commands for %s:%s", len(commands), *class, *symbol)
	}

	log.Printf("Sending commands to Kafka broker: %s, topic: %s", *brokers, *topic)

	sent := 0
	for i, cmd := range commands {
		value, err := json.Marshal(cmd)
		if err != nil {
			log.Printf("Failed to marshal command %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(cmd.Asset.Class + ":" + cmd.Asset.Symbol),
			Value: value,
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send command %d: %v", i+1, err)
			continue
		}
		sent++

		if (i+1)%100 == 0 {
			log.Printf("Sent %d/%d commands", i+1, len(commands))
		}
		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Finished sending %d/%d commands", sent, len(commands))
}
