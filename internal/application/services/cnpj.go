package services

// validCNPJ verifica un CNPJ de 14 dígitos sin máscara, incluyendo los dos
// dígitos verificadores del algoritmo oficial. Secuencias de un mismo dígito
// ("00000000000000", ...) se rechazan aunque los verificadores cierren.
func validCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || !allDigits(cnpj) {
		return false
	}
	same := true
	for i := 1; i < len(cnpj); i++ {
		if cnpj[i] != cnpj[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	digits := make([]int, 14)
	for i, r := range cnpj {
		digits[i] = int(r - '0')
	}
	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return digits[12] == checkDigit(digits[:12], weights1) &&
		digits[13] == checkDigit(digits[:13], weights2)
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	d := 11 - sum%11
	if d > 9 {
		return 0
	}
	return d
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
