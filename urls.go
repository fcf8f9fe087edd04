package main

// routes returns the application's route table. More specific patterns
// must come first: matching is by prefix and the first match wins.
func routes(v *views) []Route {
	return []Route{
		{"/now", v.now},
		{"/show_request", v.showRequest},
		{"/parameters", v.parameters},
		{"/user/<user_id>/profile", v.userProfile},
		{"/set_cookie", v.setCookie},
		{"/login", v.login},
		{"/welcome", v.welcome},
		{"/logout", v.logout},
	}
}
