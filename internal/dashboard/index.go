package dashboard

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Scoop Dashboard</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .header { background: #2c3e50; color: white; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
        .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
        .card { background: white; padding: 20px; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .chart-container { position: relative; height: 320px; }
        .feed { max-height: 240px; overflow-y: auto; font-size: 0.9em; }
        .feed div { padding: 4px 8px; border-left: 3px solid #3498db; margin: 4px 0; background: #ecf0f1; }
    </style>
</head>
<body>
    <div class="header"><h1>Scoop — Litter Box History</h1></div>
    <div class="grid">
        <div class="card">
            <h3>Weight (lbs)</h3>
            <div class="chart-container"><canvas id="weights"></canvas></div>
        </div>
        <div class="card">
            <h3>Visits per day</h3>
            <div class="chart-container"><canvas id="usage"></canvas></div>
        </div>
    </div>
    <div class="card" style="margin-top:20px">
        <h3>Live feed</h3>
        <div class="feed" id="feed"></div>
    </div>
    <script>
        async function draw() {
            const weights = await (await fetch('/api/history/weights')).json();
            new Chart(document.getElementById('weights'), {
                type: 'line',
                data: {
                    labels: weights.map(p => p.timestamp.slice(0, 16).replace('T', ' ')),
                    datasets: [{ label: 'lbs', data: weights.map(p => p.lbs), borderColor: '#3498db' }]
                },
                options: { maintainAspectRatio: false }
            });
            const usage = await (await fetch('/api/history/usage')).json();
            new Chart(document.getElementById('usage'), {
                type: 'bar',
                data: {
                    labels: usage.map(p => p.day),
                    datasets: [{ label: 'visits', data: usage.map(p => p.visits), backgroundColor: '#2ecc71' }]
                },
                options: { maintainAspectRatio: false }
            });
        }
        draw();

        const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
        ws.onmessage = (msg) => {
            const row = JSON.parse(msg.data);
            const div = document.createElement('div');
            div.textContent = row.timestamp + ' — ' + row.activity + (row.value != null ? ' (' + row.value + ')' : '');
            document.getElementById('feed').prepend(div);
        };
    </script>
</body>
</html>
`
