package knowledge

import (
	"github.com/samber/lo"

	"tekmakon-site/internal/domain"
)

// Fallback is returned when no entry matches.
const Fallback = "I'm your TekMakon Guide. I can help with:\n\n" +
	"1. **Services** (Web, Mobile, AI, IoT)\n" +
	"2. **Products** (OpSuite)\n" +
	"3. **Learning** (Explain IoT, Modbus)\n" +
	"4. **Business** (Pricing, Process)\n\n" +
	"What would you like to know?"

// Greeting is the first assistant message shown when the chat widget opens.
const Greeting = "Hello! I'm your TekMakon AI Guide. I can help you understand our services, " +
	"guide you through products like OpSuite, or teach you about IoT concepts."

const maxSuggestions = 3

var suggestions = []string{
	"What is OpSuite?",
	"How to start a project?",
	"Explain IoT simply",
	"Do you build mobile apps?",
	"What services do you offer?",
	"Pricing for custom software",
	"Explain Modbus",
	"About TekMakon",
}

// Suggestions returns up to three prompts in random order.
func Suggestions() []string {
	return lo.Samples(suggestions, maxSuggestions)
}

// DefaultEntries returns the site knowledge base in match precedence order.
// Earlier entries shadow later ones whose triggers also occur in the input.
func DefaultEntries() []domain.KnowledgeEntry {
	return []domain.KnowledgeEntry{
		// company identity
		{
			Triggers: []string{"who are you", "what is tekmakon", "about tekmakon", "company"},
			Response: "We are TekMakon, a friendly engineering guide based in Calamba City, Laguna. " +
				"We help businesses decide how technology should support their goals, serving clients nationwide and remotely. " +
				"We prioritize clear, practical explanations over confusing jargon.",
		},
		{
			Triggers: []string{"location", "where are you", "office"},
			Response: "Our office is in Calamba City, Laguna, Philippines, but we serve clients nationwide and remotely.",
		},

		// products
		{
			Triggers: []string{"opsuite", "energy monitoring", "cost tracking"},
			Response: "**OpSuite** is our solution that turns raw energy and operational data into financial insights.\n\n" +
				"**Who is it for?**\nBuilding owners and facility managers.\n\n" +
				"**Top Features:**\n1. Real-time energy monitoring\n2. Cost tracking and savings insights\n3. Actionable dashboards",
		},

		// concepts
		{
			Triggers: []string{"modbus", "protocol"},
			Response: "**Modbus** is like a common language machines use to talk to each other.\n\n" +
				"*Technical Definition:* A communication protocol used in industrial devices for data exchange.",
		},
		{
			Triggers: []string{"iot", "internet of things"},
			Response: "**IoT (Internet of Things)** is like giving every device a 'voice'.\n\n" +
				"*Simple Analogy:* Every device becomes a sensor that can speak.\n" +
				"*Technical Definition:* A network of connected devices that collect and exchange data.",
		},
		{
			Triggers: []string{"predictive maintenance", "fix before break"},
			Response: "**Predictive Maintenance** is simply fixing things *before* they break.\n\n" +
				"*Technical Definition:* Using data and AI to predict equipment failure so you can act early.",
		},

		// services: strategy
		{
			Triggers: []string{"strategy", "consulting", "digital transformation"},
			Response: "We help businesses decide how technology should support their goals, not the other way around. " +
				"We offer IT strategy, digital transformation, and system planning.",
		},
		{
			Triggers: []string{"roadmap", "planning", "future"},
			Response: "We create a clear **Technology Roadmap** of what systems to build now, later, and why. " +
				"This helps with scalability and budgeting.",
		},

		// services: custom development
		{
			Triggers: []string{"web system", "website", "custom web"},
			Response: "We build custom web systems tailored exactly to your business using modern tech like React, Next.js, and Node.js.",
		},
		{
			Triggers: []string{"mobile app", "android", "ios", "app development"},
			Response: "We create mobile apps for Android, iOS, or cross-platform use (using React Native or Flutter).",
		},
		{
			Triggers: []string{"offline", "desktop app", "no internet"},
			Response: "We build apps that work even without the internet (Offline-First) using technologies like Electron and SQLite.",
		},

		// services: automation and AI
		{
			Triggers: []string{"automation", "rpa", "repetitive"},
			Response: "We automate repetitive digital tasks humans shouldn't waste time on. " +
				"This includes approvals, notifications, and robotic process automation (RPA).",
		},
		{
			Triggers: []string{"ai", "machine learning", "chatbot"},
			Response: "We add AI that predicts, scores, or detects anomalies. " +
				"We also build chatbots (like me!) and virtual assistants to guide users inside your system.",
		},

		// sales
		{
			Triggers: []string{"start", "begin", "process", "how to work"},
			Response: "**How to Start a Project:**\n1. Initial discovery call\n2. Requirement discussion\n" +
				"3. Proposal & scope\n4. Project kickoff\n5. Build, test, deploy\n6. Support & improvement",
		},
		{
			Triggers: []string{"price", "cost", "quote", "pricing"},
			Response: "Our pricing is flexible:\n- **Custom Quote:** Based on project scope.\n" +
				"- **Fixed Price:** For well-defined projects.\n- **Retainer:** For ongoing support contracts.",
		},
		{
			Triggers: []string{"contact", "email", "phone", "talk to team"},
			Response: "You can reach us at **support@tekmakon.com**, use the contact form on our website, " +
				"or I can help guide you to the right service right here.",
		},

		// faq
		{
			Triggers: []string{"residential", "home", "house"},
			Response: "Do we do residential home automation? Yes, for selected projects depending on scope and requirements.",
		},
		{
			Triggers: []string{"support", "maintenance", "after launch"},
			Response: "Yes, we offer post-launch support, including maintenance, enhancements, and system monitoring.",
		},
	}
}
