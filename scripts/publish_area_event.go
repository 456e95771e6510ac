//go:build ignore

// Publishes one area resolve event so the worker can be exercised by hand:
//
//	go run scripts/publish_area_event.go -location <uuid> -lat 25.0330 -lon 121.5654
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/location-quest/internal/domain"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	locationID := flag.String("location", "", "Location ID (random when empty)")
	lat := flag.Float64("lat", 25.0330, "Latitude")
	lon := flag.Float64("lon", 121.5654, "Longitude")
	group := flag.String("group", "area-resolver-workers", "Consumer group to watch")
	flag.Parse()

	id := uuid.New()
	if *locationID != "" {
		parsed, err := uuid.Parse(*locationID)
		if err != nil {
			log.Fatalf("Invalid location ID: %v", err)
		}
		id = parsed
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	data, err := json.Marshal(domain.AreaResolveEvent{LocationID: id, Latitude: *lat, Longitude: *lon})
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamLocationArea,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamLocationArea)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Location ID: %s\n", id)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", *lat, *lon)

	// The worker acknowledges every message it reads, so the event is
	// handled once the group's last delivered ID reaches it.
	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the worker")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamLocationArea).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name == *group && g.LastDeliveredID >= msgID && g.Pending == 0 {
					fmt.Println("Event handled by the worker")
					return
				}
			}
		}
	}
}
