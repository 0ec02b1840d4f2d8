package models

// Model is a remote model identifier as the completions API expects it.
type Model string

const (
	QwenQwQ32B                  Model = "Qwen/QwQ-32B"
	Llama32_90BVisionInstruct   Model = "meta-llama/Llama-3.2-90B-Vision-Instruct"
	DeepSeekR1                  Model = "deepseek-ai/DeepSeek-R1"
	DeepSeekR1DistillLlama70B   Model = "deepseek-ai/DeepSeek-R1-Distill-Llama-70B"
	DeepSeekR1DistillQwen32B    Model = "deepseek-ai/DeepSeek-R1-Distill-Qwen-32B"
	Llama33_70BInstruct         Model = "meta-llama/Llama-3.3-70B-Instruct"
	Qwen2VL7BInstruct           Model = "Qwen/Qwen2-VL-7B-Instruct"
	DBRXInstruct                Model = "databricks/dbrx-instruct"
	Ministral8BInstruct2410     Model = "mistralai/Mistral-8B-Instruct-2410"
	ConfuciusO1_14B             Model = "netease-youdao/Confucius-o1-14B"
	AceMath7BInstruct           Model = "nvidia/AceMath-7B-Instruct"
	Llama31Nemotron70BInstruct  Model = "neuralmagic/Llama-3.1-Nemotron-70B-Instruct-HF-FP8-dynamic"
	MistralLargeInstruct2411    Model = "mistralai/Mistral-Large-Instruct-2411"
	MicrosoftPhi4               Model = "microsoft/phi-4"
	DobbyMiniUnhingedLlama31_8B Model = "SentientAGI/Dobby-Mini-Unhinged-Llama-3.1-8B"
	WattTool70B                 Model = "watt-ai/watt-tool-70B"
	BespokeStratos32B           Model = "bespokelabs/Bespoke-Stratos-32B"
	SkyT1_32BPreview            Model = "NovaSky-AI/Sky-T1-32B-Preview"
	Falcon3_10BInstruct         Model = "tiiuae/Falcon3-10B-Instruct"
	C4AICommandRPlus082024      Model = "CohereForAI/c4ai-command-r-plus-08-2024"
	GLM4_9BChat                 Model = "THUDM/glm-4-9b-chat"
	Qwen25Coder32BInstruct      Model = "Qwen/Qwen2.5-Coder-32B-Instruct"
	AyaExpanse32B               Model = "CohereForAI/aya-expanse-32b"
	ReaderLMV2                  Model = "jinaai/ReaderLM-v2"
	MiniCPM3_4B                 Model = "openbmb/MiniCPM3-4B"
	Qwen25_1_5BInstruct         Model = "Qwen/Qwen2.5-1.5B-Instruct"
	OzoneAI0xLite               Model = "ozone-ai/0x-lite"
	Phi35MiniInstruct           Model = "microsoft/Phi-3.5-mini-instruct"
	Granite31_8BInstruct        Model = "ibm-granite/granite-3.1-8b-instruct"
)

const DefaultModel = DeepSeekR1

var catalog = []Model{
	QwenQwQ32B,
	Llama32_90BVisionInstruct,
	DeepSeekR1,
	DeepSeekR1DistillLlama70B,
	DeepSeekR1DistillQwen32B,
	Llama33_70BInstruct,
	Qwen2VL7BInstruct,
	DBRXInstruct,
	Ministral8BInstruct2410,
	ConfuciusO1_14B,
	AceMath7BInstruct,
	Llama31Nemotron70BInstruct,
	MistralLargeInstruct2411,
	MicrosoftPhi4,
	DobbyMiniUnhingedLlama31_8B,
	WattTool70B,
	BespokeStratos32B,
	SkyT1_32BPreview,
	Falcon3_10BInstruct,
	C4AICommandRPlus082024,
	GLM4_9BChat,
	Qwen25Coder32BInstruct,
	AyaExpanse32B,
	ReaderLMV2,
	MiniCPM3_4B,
	Qwen25_1_5BInstruct,
	OzoneAI0xLite,
	Phi35MiniInstruct,
	Granite31_8BInstruct,
}

// Models returns the supported catalog in declaration order.
func Models() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// Known reports whether m is part of the supported catalog.
func (m Model) Known() bool {
	for _, c := range catalog {
		if c == m {
			return true
		}
	}
	return false
}

func (m Model) String() string { return string(m) }
