package smalltalk

// cannedResponses answer the suggestion-bar prompts verbatim, at any step.
var cannedResponses = map[string]string{
	"What can you do?": "My Capabilities\n" +
		"- Conduct assessments across 10 life essential areas\n" +
		"- Provide personalized recommendations for improvement\n" +
		"- Analyze your responses with detailed scoring\n" +
		"- Generate comprehensive reports\n" +
		"- Track your progress over time\n" +
		"I can help with: Health, Fitness, Nutrition, Mental Wellbeing, Productivity, Finance, Technology Awareness, Personal Development, Social Skills, and Home Management.\n" +
		"Would you like to start an assessment?",
	"Tell me about yourself": "About Me\n" +
		"I'm your Daily Life Essentials Assistant, designed to help you improve all aspects of your life through:\n" +
		"- Comprehensive assessments across 10 key areas\n" +
		"- Data-driven insights and scoring\n" +
		"- Personalized action plans\n" +
		"- Evidence-based recommendations\n" +
		"My goal is to help you optimize your daily life and build better habits.",
	"How does this work?": "Assessment Process\n" +
		"1. Choose from our 10 life essential topics\n" +
		"2. Answer 6 multiple-choice questions per topic\n" +
		"3. Receive immediate scoring (1-7) with level indicators (A/B/C/D)\n" +
		"4. Get personalized recommendations\n" +
		"5. Track improvements over time\n" +
		"Each assessment gives you a clear picture of your current status and actionable steps for improvement.",
	"What topics do you cover?": "Life Essential Topics\n" +
		"- Health: physical wellbeing and medical care\n" +
		"- Fitness: exercise and physical activity\n" +
		"- Nutrition: diet and eating habits\n" +
		"- Mental Wellbeing: emotional and psychological health\n" +
		"- Productivity: time management and efficiency\n" +
		"- Finance: money management and savings\n" +
		"- Technology Awareness: digital literacy and security\n" +
		"- Personal Development: skills and self-improvement\n" +
		"- Social Skills: communication and relationships\n" +
		"- Home Management: organization and household tasks\n" +
		"Which topic would you like to explore?",
	"What's new?": "Recent Updates\n" +
		"- Expanded to 10 essential life areas\n" +
		"- New comprehensive scoring system (1-7 with A-D levels)\n" +
		"- More personalized recommendations\n" +
		"- Improved progress tracking\n" +
		"- Better comparison tools\n" +
		"Try our new assessments in Finance, Technology Awareness, Social Skills, and more!",
}

// basicQA backs the fuzzy matcher for free text on the welcome step.
var basicQA = []QA{
	{"hi", "Hello! I'm your Life Essentials Assistant. How may I help you today?"},
	{"hello", "Greetings! I'm here to assist with your life assessments and personal development."},
	{"hey", "Hello there! What would you like to explore today?"},
	{"how are you", "I'm functioning optimally, thank you. How can I assist you today?"},
	{"what's up", "I'm ready to assist you with life assessments and improvement strategies. How may I help?"},
	{"who are you", "I am an AI Life Essentials Assistant, designed to help with personal development and life assessments."},
	{"what is your name", "You may refer to me as LifeEssentials AI. How can I assist you today?"},
	{"are you human", "No, I am an artificial intelligence system designed to provide life assessment and personal development guidance."},
	{"what can you do", "I specialize in comprehensive life assessments across 10 essential domains including health, productivity, and finance, providing personalized recommendations."},
	{"what do you do", "I offer evidence-based life assessments and generate actionable insights for personal improvement."},
	{"help", "Certainly. You can: 1) Begin an assessment 2) Get life improvement tips 3) Learn about specific life domains. What would you like to do?"},
	{"menu", "Main options: 1) Start Assessment 2) Domain Information 3) Example Questions 4) Personal Development Resources"},
	{"options", "Available functions: conduct assessments, provide domain-specific insights, generate improvement plans, share educational resources."},
	{"thanks", "You're most welcome. I'm here to assist you whenever needed."},
	{"thank you", "It's my pleasure to help. Don't hesitate to return with any questions."},
	{"cool", "I appreciate your feedback. Shall we continue with your assessment?"},
	{"awesome", "Thank you. I'm ready to help you explore improvement opportunities."},
	{"bye", "Goodbye! Remember you can return anytime for personal development support."},
	{"goodbye", "Thank you for your time. Wishing you continued growth and success."},
	{"exit", "Session ending. You may type 'start' at any time to begin a new assessment."},
	{"stop", "Understood. Simply say 'hi' when you wish to resume our conversation."},
	{"reset", "Initializing new session. How would you like to proceed?"},
	{"start over", "Beginning fresh session. Which life domain would you like to assess?"},
	{"assessment", "Would you prefer to assess: 1) Health 2) Productivity 3) Finance 4) Other domains?"},
	{"demo", "For a demonstration, you might ask: 'Show health assessment example' or 'How does productivity assessment work?'"},
}
