package renders

// reportCSS is inlined into every HTML report. Colors meet WCAG 2.1 AA
// contrast on the dark background.
const reportCSS = `
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
    line-height: 1.6;
    color: #e0e0e0;
    background: #1a1a1a;
    padding: 2rem 1rem;
}

.container {
    max-width: 1100px;
    margin: 0 auto;
    background: #2a2a2a;
    border-radius: 12px;
    padding: 2rem;
    box-shadow: 0 4px 24px rgba(0, 0, 0, 0.4);
}

h1 {
    font-size: 2.2rem;
    color: #ffffff;
    margin-bottom: 1.5rem;
    padding-bottom: 0.75rem;
    border-bottom: 3px solid #ff6f00;
}

h2 {
    font-size: 1.5rem;
    color: #ffffff;
    margin: 2rem 0 1rem;
    padding-left: 0.75rem;
    border-left: 4px solid #ec407a;
}

p {
    margin-bottom: 0.75rem;
}

ul {
    margin: 0 0 1rem 1.5rem;
}

li {
    margin-bottom: 0.4rem;
}

code {
    font-family: "SFMono-Regular", Consolas, "Liberation Mono", Menlo, monospace;
    background: #1a1a1a;
    color: #ffb74d;
    padding: 0.15rem 0.4rem;
    border-radius: 4px;
}

strong {
    color: #ffffff;
}

.summary-stats {
    margin-bottom: 2rem;
}

.stats-container {
    display: grid;
    grid-template-columns: repeat(5, 1fr);
    gap: 1rem;
}

.stat-item {
    background: #1a1a1a;
    border-radius: 8px;
    padding: 1rem;
    text-align: center;
}

.stat-number {
    font-size: 2rem;
    font-weight: 700;
    color: #ffffff;
}

.stat-label {
    font-size: 0.85rem;
    text-transform: uppercase;
    letter-spacing: 0.05em;
}

.stat-critical .stat-number { color: #ef5350; }
.stat-high .stat-number { color: #ff7043; }
.stat-warning .stat-number { color: #ffa726; }
.stat-suggestion .stat-number { color: #bcaaa4; }

.severity-badge {
    display: inline-flex;
    align-items: center;
    gap: 0.4rem;
    font-weight: 700;
    font-size: 0.95rem;
    padding: 0.35rem 0.8rem;
    border-radius: 6px;
    color: #ffffff;
}

.severity-badge.severity-critical { background: #c62828; }
.severity-badge.severity-high { background: #d84315; }
.severity-badge.severity-warning { background: #d53d0d; }
.severity-badge.severity-suggestion { background: #5d4037; }

.severity-icon {
    font-size: 1.1rem;
}

.issue-card {
    border-radius: 8px;
    margin-bottom: 1rem;
    border-left: 5px solid #616161;
    background: #1f1f1f;
}

.issue-card.critical { border-left-color: #c62828; background: rgba(198, 40, 40, 0.15); }
.issue-card.high { border-left-color: #d84315; background: rgba(216, 67, 21, 0.15); }
.issue-card.warning { border-left-color: #d53d0d; background: rgba(213, 61, 13, 0.15); }
.issue-card.suggestion { border-left-color: #5d4037; background: rgba(93, 64, 55, 0.15); }

.issue-summary {
    display: flex;
    flex-wrap: wrap;
    align-items: center;
    gap: 0.75rem;
    padding: 1rem;
    cursor: pointer;
    list-style: none;
}

.issue-summary::-webkit-details-marker {
    display: none;
}

.issue-number {
    font-size: 0.85rem;
    color: #bdbdbd;
}

.issue-description {
    flex: 1 1 100%;
    font-weight: 600;
}

.confidence {
    font-size: 0.85rem;
    color: #bdbdbd;
}

.issue-details {
    padding: 0 1rem 1rem;
    border-top: 1px solid rgba(255, 255, 255, 0.08);
}

.issue-details p {
    margin-top: 0.75rem;
}

.positive-observation {
    background: rgba(46, 125, 50, 0.15);
    border-left: 5px solid #2e7d32;
    border-radius: 8px;
    padding: 1rem;
}

@media (max-width: 768px) {
    .container {
        padding: 1rem;
    }
    .stats-container {
        grid-template-columns: repeat(2, 1fr);
    }
    h1 {
        font-size: 1.6rem;
    }
}

@media print {
    body {
        background: #ffffff;
        color: #000000;
    }
    .container {
        box-shadow: none;
        background: #ffffff;
    }
    h1, h2, strong, .stat-number {
        color: #000000;
    }
    .issue-card {
        break-inside: avoid;
    }
}
`
