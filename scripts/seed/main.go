// Package main implements a standalone seed script that populates the review
// insights service with realistic Vietnamese review data through its HTTP
// API, so the summary pipeline has something meaningful to chew on during
// local development.
package main

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Configuration helpers
// --------------------------------------------------------------------------

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// --------------------------------------------------------------------------
// Review templates
// --------------------------------------------------------------------------

// Comments are bucketed by rating so seeded data produces believable
// highlights, keywords, and aspect scores.
var positiveComments = []string{
	"Chất lượng sản phẩm rất tốt, dùng hơn một tháng vẫn hoạt động hoàn hảo.",
	"Giao hàng nhanh, đóng gói cẩn thận, nhân viên tư vấn nhiệt tình.",
	"Giá cả hợp lý so với chất lượng, sẽ ủng hộ shop lần sau.",
	"Sản phẩm đúng mô tả, màu sắc đẹp, chất liệu bền chắc.",
	"Rất hài lòng với dịch vụ chăm sóc khách hàng, phản hồi nhanh chóng.",
	"Đóng gói chắc chắn, hàng nguyên seal, đáng đồng tiền bát gạo.",
}

var neutralComments = []string{
	"Sản phẩm tạm ổn, dùng được nhưng chưa có gì nổi bật.",
	"Hàng đúng mô tả, giao hơi lâu một chút nhưng chấp nhận được.",
	"Chất lượng bình thường so với tầm giá, không hơn không kém.",
}

var negativeComments = []string{
	"Giao hàng chậm hơn dự kiến ba ngày, hộp bị móp một góc.",
	"Chất lượng không như mô tả, dùng được một tuần đã có vấn đề.",
	"Đóng gói sơ sài, sản phẩm bị trầy xước khi nhận hàng.",
	"Giá hơi cao so với chất lượng thực tế, hơi thất vọng.",
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		log.Fatalf("rand: %v", err)
	}
	return int(v.Int64())
}

// pickReview returns a rating and matching comment, skewed positive the way
// real marketplace review distributions are.
func pickReview() (int, string) {
	roll := randInt(100)
	switch {
	case roll < 55:
		return 5, positiveComments[randInt(len(positiveComments))]
	case roll < 75:
		return 4, positiveComments[randInt(len(positiveComments))]
	case roll < 85:
		return 3, neutralComments[randInt(len(neutralComments))]
	case roll < 93:
		return 2, negativeComments[randInt(len(negativeComments))]
	default:
		return 1, negativeComments[randInt(len(negativeComments))]
	}
}

func randomUUID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("rand: %v", err)
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// --------------------------------------------------------------------------
// HTTP helpers
// --------------------------------------------------------------------------

func postReview(baseURL, productID, userID string, rating int, comment string) error {
	payload := map[string]any{
		"rating": rating,
		"body":   comment,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/products/%s/reviews", baseURL, productID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// --------------------------------------------------------------------------
// Main
// --------------------------------------------------------------------------

func main() {
	baseURL := getEnv("REVIEW_SERVICE_URL", "http://localhost:8010")
	reviewsPerProduct := getEnvInt("SEED_REVIEWS_PER_PRODUCT", 30)

	// SEED_PRODUCT_IDS accepts a comma-separated list; without it a handful
	// of fresh product IDs are generated.
	var productIDs []string
	if raw := os.Getenv("SEED_PRODUCT_IDS"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				productIDs = append(productIDs, id)
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			productIDs = append(productIDs, randomUUID())
		}
	}

	log.Printf("seeding %d reviews for each of %d products against %s",
		reviewsPerProduct, len(productIDs), baseURL)

	start := time.Now()
	var created, failed int
	for _, productID := range productIDs {
		for i := 0; i < reviewsPerProduct; i++ {
			rating, comment := pickReview()
			if err := postReview(baseURL, productID, randomUUID(), rating, comment); err != nil {
				failed++
				log.Printf("seed review for %s: %v", productID, err)
				continue
			}
			created++
		}
		log.Printf("seeded product %s", productID)
	}

	log.Printf("done: %d reviews created, %d failed in %s", created, failed, time.Since(start).Round(time.Millisecond))
	for _, productID := range productIDs {
		fmt.Printf("%s/api/v1/products/%s/reviews/insights\n", baseURL, productID)
	}
}
