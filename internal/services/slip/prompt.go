package slip

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NeighborhoodFee is one registered neighborhood as sent by the app
type NeighborhoodFee struct {
	Name string  `json:"nome"`
	Fee  float64 `json:"taxa"`
}

const noNeighborhoods = "Nenhum bairro cadastrado"

// NeighborhoodList renders "Centro: R$12.50, Jardim: R$8.00"
func NeighborhoodList(list []NeighborhoodFee) string {
	if len(list) == 0 {
		return noNeighborhoods
	}
	parts := make([]string, 0, len(list))
	for _, n := range list {
		parts = append(parts, fmt.Sprintf("%s: R$%s", n.Name, decimal.NewFromFloat(n.Fee).StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

func systemPrompt(neighborhoods string) string {
	return `Você é um assistente especializado em ler comandas de entrega de motoboy.
Analise a imagem da comanda e extraia as seguintes informações:
- endereco: o endereço completo de entrega
- bairro: o bairro/região da entrega
- referencia: ponto de referência se houver
- observacao: qualquer observação adicional

Os bairros cadastrados com suas taxas são: ` + neighborhoods + `

Se identificar um bairro que corresponda aos cadastrados, use o nome exato do bairro cadastrado.

Responda APENAS com um objeto JSON válido no formato:
{
  "endereco": "endereço extraído",
  "bairro": "bairro identificado",
  "referencia": "referência se houver ou null",
  "observacao": "observação se houver ou null",
  "confianca": "alta/media/baixa"
}

Se não conseguir identificar algum campo, use null.`
}

const userPrompt = "Analise esta comanda de entrega e extraia as informações:"

// imageURL accepts either a data URL or bare base64
func imageURL(image string) string {
	if strings.HasPrefix(image, "data:") || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return "data:image/jpeg;base64," + image
}
