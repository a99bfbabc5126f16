// File: internal/services/ai/prompts.go
package ai

import "fmt"

const translationSystem = "You are a helpful medical translator. Your job is to translate medical jargon " +
	"and technical terms into simple, easy-to-understand language that patients can comprehend. " +
	"Be clear, accurate, and empathetic. Do not provide medical advice."

const suggestionsSystem = "You are a helpful wellness advisor. Based on medical conditions described, " +
	"you provide general lifestyle tips and suggestions that may help patients manage their condition. " +
	"IMPORTANT: You do NOT provide medical advice, diagnoses, or treatment recommendations. " +
	"You only suggest general lifestyle improvements like diet, exercise, sleep, stress management, etc. " +
	"Always remind users to consult their healthcare provider."

const chatSystem = `You are a helpful and empathetic medical assistant. You are chatting with a patient who uses the "Medical Records Bridge" app.

Your Role:
1. Answer the patient's questions based on their medical records context if provided.
2. Be supportive, clear, and reassuring.
3. Explain medical concepts in simple terms.

CRITICAL RULES:
1. DO NOT provide medical advice, diagnosis, or prescribe treatments.
2. Always encourage the patient to consult their real healthcare provider for symptoms.
3. If you don't know the answer from the context, admit it.`

// ImageAnalysisPrompt is sent alongside uploaded record images; the reply
// becomes the record's original text.
const ImageAnalysisPrompt = "Extract all text from this medical document and summarize key medical details."

// TranslationPrompt builds the plain-language translation request for a
// piece of medical text.
func TranslationPrompt(medicalText string) CompletionRequest {
	prompt := fmt.Sprintf(`Please translate the following medical text into simple, easy-to-understand language that a patient without medical training can understand. Explain any medical terms, abbreviations, and concepts clearly:

%s

Provide a clear, patient-friendly explanation:`, medicalText)

	return CompletionRequest{SystemPrompt: translationSystem, UserPrompt: prompt}
}

// SuggestionsPrompt builds the lifestyle-suggestions request for a medical
// condition description.
func SuggestionsPrompt(condition string) CompletionRequest {
	prompt := fmt.Sprintf(`Based on the following medical information, suggest some general lifestyle tips that might help the patient. Focus on diet, exercise, sleep, stress management, and daily habits. Remember: DO NOT give medical advice or suggest treatments. Only provide general wellness suggestions.

Medical Information:
%s

Please provide helpful lifestyle suggestions:`, condition)

	return CompletionRequest{SystemPrompt: suggestionsSystem, UserPrompt: prompt}
}

// ChatPrompt builds the patient-chat request. When contextText is non-empty
// the question is prefixed with the retrieved medical-record context.
func ChatPrompt(message, contextText string, image []byte) CompletionRequest {
	prompt := message
	if contextText != "" {
		prompt = fmt.Sprintf("Context from my medical records:\n%s\n\nMy Question: %s", contextText, message)
	}
	return CompletionRequest{SystemPrompt: chatSystem, UserPrompt: prompt, Image: image}
}

// ImageAnalysisRequest builds the vision request used on record upload.
func ImageAnalysisRequest(image []byte) CompletionRequest {
	return CompletionRequest{UserPrompt: ImageAnalysisPrompt, Image: image}
}
