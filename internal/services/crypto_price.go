package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// Caché en memoria para reducir llamadas a la API de precios
var (
	priceCache   = make(map[string]cachedPrice)
	priceCacheMu sync.RWMutex
)

const priceCacheTTL = 5 * time.Minute

type cachedPrice struct {
	Data      *models.Welcome
	Timestamp time.Time
}

// GetCryptoPrice obtiene el precio actual de una criptomoneda en USD desde
// CryptoCompare. Las respuestas se cachean cinco minutos; el llamador no
// necesita reintentar, si la API falla se devuelve el error tal cual.
func GetCryptoPrice(ticker string) (*models.Welcome, error) {
	priceCacheMu.RLock()
	cached, exists := priceCache[ticker]
	priceCacheMu.RUnlock()
	if exists && time.Since(cached.Timestamp) < priceCacheTTL {
		return cached.Data, nil
	}

	apiKey := os.Getenv("CRYPTO_API_KEY")
	url := fmt.Sprintf("https://min-api.cryptocompare.com/data/pricemultifull?fsyms=%s&tsyms=USD&api_key=%s",
		ticker, apiKey)

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("Error haciendo la petición HTTP para %s: %v", ticker, err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error leyendo el cuerpo de la respuesta para %s: %v", ticker, err)
		return nil, fmt.Errorf("error leyendo respuesta: %v", err)
	}

	var result models.Welcome
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Error decodificando JSON para %s: %v", ticker, err)
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	if _, exists := result.Raw[ticker]; !exists {
		log.Printf("No se encontraron datos para el ticker %s", ticker)
		return nil, fmt.Errorf("no se encontraron datos para %s", ticker)
	}

	priceCacheMu.Lock()
	priceCache[ticker] = cachedPrice{Data: &result, Timestamp: time.Now()}
	priceCacheMu.Unlock()

	return &result, nil
}

// GetMultipleCryptoPrices obtiene los precios actuales de múltiples
// criptomonedas en una sola llamada a la API.
func GetMultipleCryptoPrices(tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no se proporcionaron tickers")
	}

	tickersStr := strings.Join(tickers, ",")
	apiKey := os.Getenv("CRYPTO_API_KEY")
	url := fmt.Sprintf("https://min-api.cryptocompare.com/data/pricemulti?fsyms=%s&tsyms=USD&api_key=%s",
		tickersStr, apiKey)

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("Error haciendo la petición HTTP para múltiples tickers: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error leyendo el cuerpo de la respuesta para múltiples tickers: %v", err)
		return nil, fmt.Errorf("error leyendo respuesta: %v", err)
	}

	var result map[string]map[string]float64
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Error decodificando JSON para múltiples tickers: %v", err)
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}

	// Extraer los precios en USD
	prices := make(map[string]float64)
	for ticker, data := range result {
		if usdPrice, exists := data["USD"]; exists {
			prices[ticker] = usdPrice
		}
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("no se encontraron precios para los tickers proporcionados")
	}

	return prices, nil
}

// GetCryptoImageURL obtiene la URL de la imagen de una criptomoneda.
func GetCryptoImageURL(ticker string) (string, error) {
	cryptoData, err := GetCryptoPrice(ticker)
	if err != nil {
		return "", err
	}

	imageURL := cryptoData.Raw[ticker]["USD"].IMAGEURL

	// Si la URL está vacía, construir una por defecto con el servicio de CryptoCompare
	if imageURL == "" {
		imageURL = fmt.Sprintf("https://www.cryptocompare.com/media/37746251/%s.png", strings.ToLower(ticker))
	} else if !strings.HasPrefix(imageURL, "http") {
		imageURL = "https://www.cryptocompare.com" + imageURL
	}

	return imageURL, nil
}
