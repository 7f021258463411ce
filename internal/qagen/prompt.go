package qagen

import "fmt"

// systemPrompt is the fixed instruction the dataset was built with.
const systemPrompt = "You are a helpful assistant that generates questions and answers based on given content in Danish."

// promptTemplate asks, in Danish, for exactly five question/answer
// pairs as a JSON list of records keyed 'spørgsmål' and 'svar'.
const promptTemplate = `Givet følgende Wikipedia-artikel, skal du generere 5 spørgsmål og deres svar baseret på indholdet.
Svaret skal stå direkte i den givne artikel, uden brug af anden viden. Svaret skal være kort, gerne kun 1 til 2 ord eller et tal.
Spørgsmålet må gerne være svært, og omformuler gerne ord i teksten.
Formater outputtet som en liste af records, hvor hver record indeholder en 'spørgsmål' og en 'svar' nøgle.

Titel: %s
Indhold: %s

Output kun listen af records, uden yderligere tekst. Sørg for at både spørgsmål og svar er på dansk.`

// buildPrompt embeds the title and at most maxContentRunes of content
// into the fixed template.
func buildPrompt(title, content string, maxContentRunes int) string {
	return fmt.Sprintf(promptTemplate, title, truncateRunes(content, maxContentRunes))
}

// truncateRunes cuts s after n runes. Byte slicing would split the
// multi-byte Danish characters.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}
