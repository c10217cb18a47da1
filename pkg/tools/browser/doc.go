// Package browser exposes the headless browser controller as agent tools.
//
// Every tool operates on the single shared browser session managed by
// browser.Manager. Tools identify their caller by user ID; the manager's
// session gate decides whether the call may proceed. Tools that change page
// state return a freshly marked screenshot so the model can ground its next
// action on numbered element tags.
package browser
